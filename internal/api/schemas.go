package api

const paymentInstructionSchema = `{
  "type": "object",
  "additionalProperties": false,
  "required": ["accounts", "instruction"],
  "properties": {
    "accounts": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["id", "balance", "currency"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "balance": {"type": "number"},
          "currency": {"type": "string", "pattern": "^[A-Za-z]{3}$"}
        }
      }
    },
    "instruction": {"type": "string", "minLength": 1}
  }
}`
