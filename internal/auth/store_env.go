package auth

import (
	"context"
	"fmt"
	"strings"
)

// StaticClientStore serves OAuth clients parsed from configuration at boot.
// The processor has no client database; operators register callers through
// the environment.
type StaticClientStore struct {
	clients map[string]*Client
}

// ParseClients builds a store from a comma-separated list of
// "id:secret:scope1 scope2" entries. Secrets are bcrypt-hashed immediately so
// plaintext never outlives parsing.
func ParseClients(raw string) (*StaticClientStore, error) {
	store := &StaticClientStore{clients: map[string]*Client{}}

	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.SplitN(entry, ":", 3)
		if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("malformed client entry %q, want id:secret[:scopes]", entry)
		}

		hash, err := HashClientSecret(parts[1])
		if err != nil {
			return nil, fmt.Errorf("hashing secret for client %q: %w", parts[0], err)
		}

		var scopes []string
		if len(parts) == 3 {
			scopes = strings.Fields(parts[2])
		}

		store.clients[parts[0]] = &Client{
			ID:         parts[0],
			SecretHash: hash,
			Scopes:     scopes,
		}
	}

	return store, nil
}

func (s *StaticClientStore) GetClient(ctx context.Context, clientID string) (*Client, error) {
	c, ok := s.clients[clientID]
	if !ok {
		return nil, ErrClientNotFound
	}
	return c, nil
}

func (s *StaticClientStore) Len() int { return len(s.clients) }
