package temporal

import "fmt"

// Status is either Paused or Running.
type Status interface {
	fmt.Stringer
	status()
}

// Paused means no driver advances the board.
type Paused struct{}

// Running means the driver advances the board on every tick.
type Running struct {
	// AverageGenerationsPerSecond is the throughput measured over recent
	// ticks. It is zero until the first tick lands.
	AverageGenerationsPerSecond float64
}

func (Paused) status()  {}
func (Running) status() {}

func (Paused) String() string { return "paused" }

func (r Running) String() string {
	return fmt.Sprintf("running (%.1f generations/s)", r.AverageGenerationsPerSecond)
}
