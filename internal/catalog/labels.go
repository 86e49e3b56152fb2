package catalog

// BeadLabels renders the positional and targeting enums of bead effects
// as display labels.
type BeadLabels interface {
	ChkGroup(code int) string
	ApplyTarget(code int) string
	TargetIPos(code int) string
}
