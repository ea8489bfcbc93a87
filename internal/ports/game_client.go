package ports

import "github.com/bnema/salvage-tracker/internal/domain"

// GameClient is the read side of the host client the tracker consults while
// handling an event.
type GameClient interface {
	LocalWorldView() (domain.WorldViewID, bool)
	Widget(group, child int) (domain.Widget, bool)
}
