// Package drive moves the car around the ground plane and keeps a camera behind it.
// Motion is kinematic: speed follows throttle with drag, heading follows steering.
package drive

import (
	"github.com/chewxy/math32"
)

// Input is the driver's controls for one frame. Throttle and Steer are in [-1, 1].
type Input struct {
	Throttle float32
	Steer    float32
}

// Vehicle is the car's pose on the XZ plane. Heading 0 faces +Z.
type Vehicle struct {
	Position [3]float32
	Heading  float32
	Speed    float32

	MaxSpeed     float32
	Acceleration float32
	Drag         float32
	TurnRate     float32
}

// NewVehicle returns a vehicle at position, facing +Z, at rest.
func NewVehicle(position [3]float32) *Vehicle {
	return &Vehicle{
		Position:     position,
		MaxSpeed:     12,
		Acceleration: 8,
		Drag:         1.5,
		TurnRate:     1.8,
	}
}

// Forward returns the unit vector the vehicle faces.
func (v *Vehicle) Forward() [3]float32 {
	return [3]float32{math32.Sin(v.Heading), 0, math32.Cos(v.Heading)}
}

// Step advances the vehicle by dt seconds. Steering only turns the car while it moves,
// and reverses direction when backing up.
func (v *Vehicle) Step(dt float32, in Input) {
	if dt <= 0 {
		return
	}
	throttle := clamp(in.Throttle, -1, 1)
	steer := clamp(in.Steer, -1, 1)

	v.Speed += throttle * v.Acceleration * dt
	v.Speed -= v.Speed * v.Drag * dt
	v.Speed = clamp(v.Speed, -v.MaxSpeed/2, v.MaxSpeed)
	if throttle == 0 && math32.Abs(v.Speed) < 0.01 {
		v.Speed = 0
	}

	if v.MaxSpeed > 0 {
		v.Heading += steer * v.TurnRate * dt * (v.Speed / v.MaxSpeed)
	}
	v.Heading = wrapAngle(v.Heading)

	fwd := v.Forward()
	v.Position[0] += fwd[0] * v.Speed * dt
	v.Position[2] += fwd[2] * v.Speed * dt
}

func clamp(x, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, x))
}

// wrapAngle maps a to (-pi, pi].
func wrapAngle(a float32) float32 {
	for a > math32.Pi {
		a -= 2 * math32.Pi
	}
	for a <= -math32.Pi {
		a += 2 * math32.Pi
	}
	return a
}
