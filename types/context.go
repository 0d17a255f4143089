package types

// DefaultVersion is the fallback version when AppContext is nil
const DefaultVersion = "dev"

// AppContext carries application-wide state into command Run methods via
// kong's binding mechanism.
type AppContext struct {
	Version string
}
