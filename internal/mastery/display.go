package mastery

// Level is a coarse band of a mastery score, used for coloring.
type Level string

const (
	LevelNew      Level = "new"
	LevelBuilding Level = "building"
	LevelStrong   Level = "strong"
)

// LevelFor maps a 0-100 score to its display band.
func LevelFor(pct int) Level {
	switch {
	case pct >= 70:
		return LevelStrong
	case pct >= 40:
		return LevelBuilding
	default:
		return LevelNew
	}
}
