package certwizard

import (
	"sort"
	"strings"
)

type Role string

const (
	RoleParticipant Role = "participant"
	RoleSpeaker     Role = "speaker"
	RoleWinner      Role = "winner"
	RolePrizeWinner Role = "prize-winner"
)

// Role matching is case-insensitive; anything outside this set rejects the row.
var validRoles = map[Role]bool{
	RoleParticipant: true,
	RoleSpeaker:     true,
	RoleWinner:      true,
	RolePrizeWinner: true,
}

// Participant is one accepted row from an uploaded participant file.
type Participant struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	// Place is "1", "2" or "3" for prize winners, empty otherwise.
	Place string `json:"place,omitempty"`
}

// Uploaded files come from many export tools, so each logical field is looked
// up under several header spellings. Headers are lower-cased by the parser
// before the lookup happens.
var fieldAliases = map[string][]string{
	"participant_name": {"full name", "full_name", "fullname", "name", "fio", "фио"},
	"email":            {"email", "e-mail", "почта"},
	"role":             {"role", "роль"},
	"place":            {"place", "место"},
}

// ResolveField returns the first non-empty value of the row under any alias
// of the canonical field name.
func ResolveField(row Row, field string) string {
	for _, alias := range fieldAliases[field] {
		if v, ok := row[alias]; ok && v != "" {
			return v
		}
	}
	return ""
}

// ValidateRow normalizes one parsed row into a Participant. It returns nil
// when the row is rejected: rejections are silent by design and only counted
// in aggregate by ValidateBatch.
func ValidateRow(row Row) *Participant {
	fullName := strings.TrimSpace(ResolveField(row, "participant_name"))
	email := strings.TrimSpace(ResolveField(row, "email"))
	role := Role(strings.ToLower(strings.TrimSpace(ResolveField(row, "role"))))
	place := strings.TrimSpace(ResolveField(row, "place"))

	if fullName == "" || email == "" || role == "" {
		return nil
	}

	if !validRoles[role] {
		return nil
	}

	return &Participant{
		FullName: fullName,
		Email:    email,
		Role:     role,
		Place:    place,
	}
}

// BatchSummary aggregates one validated upload batch.
type BatchSummary struct {
	Accepted int      `json:"accepted"`
	Rejected int      `json:"rejected"`
	Roles    []string `json:"roles"`
	Places   []string `json:"places"`
}

// ValidateBatch validates every parsed row and computes the batch summary:
// the distinct roles seen and the sorted distinct places seen. A batch where
// no row validates fails with ErrNoValidRows so the caller can surface it as
// a visible error instead of an empty success.
func ValidateBatch(rows []Row) ([]Participant, BatchSummary, error) {
	participants := make([]Participant, 0, len(rows))
	roleSet := make(map[string]bool)
	placeSet := make(map[string]bool)

	for _, row := range rows {
		p := ValidateRow(row)
		if p == nil {
			continue
		}

		participants = append(participants, *p)
		roleSet[string(p.Role)] = true
		if p.Place != "" {
			placeSet[p.Place] = true
		}
	}

	if len(participants) == 0 {
		return nil, BatchSummary{Rejected: len(rows)}, ErrNoValidRows
	}

	summary := BatchSummary{
		Accepted: len(participants),
		Rejected: len(rows) - len(participants),
		Roles:    sortedKeys(roleSet),
		Places:   sortedKeys(placeSet),
	}

	return participants, summary, nil
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
