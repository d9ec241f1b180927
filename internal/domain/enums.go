package domain

// Mode identifies which reflection mode produced an entry.
type Mode string

const (
	ModeMirror    Mode = "mirror"
	ModeSynthesis Mode = "synthesis"
)

// ValidModes is the canonical set of accepted mode strings.
var ValidModes = map[string]bool{
	"mirror": true, "synthesis": true,
}
