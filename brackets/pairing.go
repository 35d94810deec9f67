package brackets

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Dosada05/sinuca-cup/models"
)

// MinPlayers is the smallest field that can be auto-paired.
const MinPlayers = 4

var ErrNotEnoughPlayers = errors.New("at least 4 players are required to form pairs")

// OddPlayersError reports the player left without a partner.
type OddPlayersError struct {
	Leftover models.Player
}

func (e *OddPlayersError) Error() string {
	return fmt.Sprintf("odd number of players: %s has no partner", e.Leftover.Name)
}

type PlayerPairing struct {
	Player1  models.Player
	Player2  models.Player
	Position int
}

func (p PlayerPairing) CombinedPoints() int {
	return p.Player1.PointsTotal + p.Player2.PointsTotal
}

func (p PlayerPairing) DisplayName() string {
	return models.PairDisplayName(p.Player1.Name, p.Player2.Name)
}

// BalancedPairs pairs the strongest remaining player with the weakest one.
// players must be in enrollment order; on an odd count the last one is reported.
func BalancedPairs(players []models.Player) ([]PlayerPairing, error) {
	if len(players)%2 != 0 {
		return nil, &OddPlayersError{Leftover: players[len(players)-1]}
	}
	if len(players) < MinPlayers {
		return nil, ErrNotEnoughPlayers
	}

	ranked := make([]models.Player, len(players))
	copy(ranked, players)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].PointsTotal > ranked[j].PointsTotal })

	n := len(ranked)
	pairings := make([]PlayerPairing, 0, n/2)
	for i := 0; i < n/2; i++ {
		pairings = append(pairings, PlayerPairing{
			Player1:  ranked[i],
			Player2:  ranked[n-1-i],
			Position: i + 1,
		})
	}
	return pairings, nil
}
