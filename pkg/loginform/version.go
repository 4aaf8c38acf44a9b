package loginform

// Version information for the loginform module.
const (
	Version              = "1.0.0"
	MinCompatibleVersion = "1.0.0"
)
