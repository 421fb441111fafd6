package core

// EventKind identifies something the presentation layer may want to show.
type EventKind uint8

const (
	EventPlayerAttack EventKind = iota
	EventPlayerHurt
	EventEnemyAttack
	EventFoodEaten
	EventItemPicked
	EventLevelAdvanced
	EventGameOver
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventPlayerAttack:
		return "player_attack"
	case EventPlayerHurt:
		return "player_hurt"
	case EventEnemyAttack:
		return "enemy_attack"
	case EventFoodEaten:
		return "food_eaten"
	case EventItemPicked:
		return "item_picked"
	case EventLevelAdvanced:
		return "level_advanced"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is a presentation trigger raised by the simulation.
type Event struct {
	Kind   EventKind
	Cell   Coord
	Amount int
}
