package roles

import "github.com/hweijian/ghostgame-go/internal/model"

// Quota is one role's share of a room of a given size
type Quota struct {
	Role  model.Role
	Count int
}

// Counts per player count, in model.Roles order (major, minor, ghost,
// clown). Every row sums to its player count and holds exactly one ghost.
var quotaTable = map[int][4]int{
	6:  {3, 1, 1, 1},
	7:  {4, 1, 1, 1},
	8:  {4, 2, 1, 1},
	9:  {5, 2, 1, 1},
	10: {6, 2, 1, 1},
}

// QuotasFor returns the role quotas for a room of playerCount players, in
// display order. Counts outside [6, 10] fail with ErrUnsupportedSize.
func QuotasFor(playerCount int) ([]Quota, error) {
	counts, ok := quotaTable[playerCount]
	if !ok {
		return nil, model.ErrUnsupportedSize
	}

	quotas := make([]Quota, len(model.Roles))
	for i, role := range model.Roles {
		quotas[i] = Quota{Role: role, Count: counts[i]}
	}
	return quotas, nil
}
