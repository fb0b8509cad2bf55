package core

// Action is a semantic view action, abstracted from physical key presses.
type Action int

const (
	ActionNone      Action = iota
	ActionPrevLevel        // Left - previous picker item
	ActionNextLevel        // Right - next picker item
	ActionLevel1           // 1 - select first level
	ActionLevel2           // 2 - select second level
	ActionLevel3           // 3 - select third level
	ActionTap              // Space, T - tap the shadow button
	ActionReroll           // R - lay out the current level again
	ActionTable            // Tab - show or hide the placement table
	ActionHelp             // ? - toggle full help
	ActionQuit             // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionPrevLevel:
		return "PrevLevel"
	case ActionNextLevel:
		return "NextLevel"
	case ActionLevel1:
		return "Level1"
	case ActionLevel2:
		return "Level2"
	case ActionLevel3:
		return "Level3"
	case ActionTap:
		return "Tap"
	case ActionReroll:
		return "Reroll"
	case ActionTable:
		return "Table"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// LevelIndex returns the picker index a direct-select action stands for.
func (a Action) LevelIndex() (int, bool) {
	switch a {
	case ActionLevel1:
		return 0, true
	case ActionLevel2:
		return 1, true
	case ActionLevel3:
		return 2, true
	}
	return 0, false
}
