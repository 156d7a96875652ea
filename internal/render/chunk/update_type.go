package chunk

// UpdateType describes why a section needs to be rebuilt.
type UpdateType uint8

const (
	UpdateNone UpdateType = iota
	UpdateRebuild
	// UpdateImportantRebuild is scheduled ahead of regular rebuilds.
	UpdateImportantRebuild
)

// Merge combines a pending update with a new request; importance is sticky.
func (t UpdateType) Merge(other UpdateType) UpdateType {
	return max(t, other)
}

func (t UpdateType) IsImportant() bool {
	return t == UpdateImportantRebuild
}

func (t UpdateType) String() string {
	switch t {
	case UpdateNone:
		return "none"
	case UpdateRebuild:
		return "rebuild"
	case UpdateImportantRebuild:
		return "important_rebuild"
	default:
		return "unknown"
	}
}
