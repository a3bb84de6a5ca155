package catalog

import "strconv"

// Mode tells Submit whether to append a new game or replace an existing
// one. The zero value is add mode.
type Mode struct {
	index int
	edit  bool
}

// AddMode appends on submit.
func AddMode() Mode { return Mode{} }

// EditMode replaces the game at index on submit.
func EditMode(index int) Mode { return Mode{index: index, edit: true} }

// Editing returns the edit target, if any.
func (m Mode) Editing() (int, bool) { return m.index, m.edit }

func (m Mode) String() string {
	if !m.edit {
		return "add"
	}
	return "edit(" + strconv.Itoa(m.index) + ")"
}

// AfterDelete adjusts m for the removal of the game at index. An edit target
// after index moves down by one; removed reports that the target itself was
// deleted, in which case the returned mode is add mode.
func (m Mode) AfterDelete(index int) (next Mode, removed bool) {
	target, ok := m.Editing()
	switch {
	case !ok || target < index:
		return m, false
	case target == index:
		return AddMode(), true
	default:
		return EditMode(target - 1), false
	}
}
