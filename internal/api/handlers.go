package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/example/payment-instructions/internal/instruction"
	"github.com/example/payment-instructions/internal/security"
)

type paymentInstructionRequest struct {
	Accounts    []*instruction.Account `json:"accounts"`
	Instruction string                 `json:"instruction"`
}

type paymentInstructionResponse struct {
	Status  instruction.Status `json:"status"`
	Message string             `json:"message"`
	Data    instruction.Result `json:"data"`
}

func handlePaymentInstruction(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req paymentInstructionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			security.WriteJSONError(w, r, http.StatusBadRequest, "invalid_json")
			return
		}

		cid := security.CorrelationIDFromContext(r.Context())

		res, err := instruction.Evaluate(req.Accounts, req.Instruction, time.Now())
		if err != nil {
			// Business failures come back as failed results; an error here
			// means schema-validated input still broke an invariant.
			deps.Logger.Error("instruction_evaluation_failed", "cid", cid, "err", err)
			security.WriteJSONError(w, r, http.StatusInternalServerError, "internal_error")
			return
		}

		deps.Logger.Info("instruction_evaluated",
			"cid", cid,
			"status", res.Status,
			"status_code", res.StatusCode,
		)

		if deps.Auditor != nil {
			deps.Auditor.Append(fmt.Sprintf("cid=%s status=%s code=%s", cid, res.Status, res.StatusCode))
		}

		if res.Status == instruction.StatusFailed {
			msg := res.StatusReason
			if msg == "" {
				msg = "Transaction failed"
			}
			writeJSON(w, r, http.StatusBadRequest, paymentInstructionResponse{
				Status:  res.Status,
				Message: msg,
				Data:    res,
			})
			return
		}

		writeJSON(w, r, http.StatusOK, paymentInstructionResponse{
			Status:  res.Status,
			Message: "Transaction executed successfully",
			Data:    res,
		})
	}
}
