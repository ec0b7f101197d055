package drive

import "github.com/chewxy/math32"

// FollowCamera trails a vehicle at a fixed distance and height. Smoothing is the rate
// of the exponential approach (1/s); zero snaps to the goal every frame.
type FollowCamera struct {
	Position [3]float32
	Target   [3]float32

	Distance  float32
	Height    float32
	Smoothing float32
}

// NewFollowCamera returns a camera that starts exactly at its goal behind v.
func NewFollowCamera(v *Vehicle, distance, height, smoothing float32) *FollowCamera {
	c := &FollowCamera{Distance: distance, Height: height, Smoothing: smoothing}
	c.Position, c.Target = c.Goal(v)
	return c
}

// Goal returns where the camera wants to be and where it looks.
func (c *FollowCamera) Goal(v *Vehicle) (position, target [3]float32) {
	fwd := v.Forward()
	position = [3]float32{
		v.Position[0] - fwd[0]*c.Distance,
		v.Position[1] + c.Height,
		v.Position[2] - fwd[2]*c.Distance,
	}
	target = [3]float32{v.Position[0], v.Position[1] + c.Height*0.3, v.Position[2]}
	return position, target
}

// Update moves the camera toward its goal over dt seconds.
func (c *FollowCamera) Update(v *Vehicle, dt float32) {
	goalPos, goalTarget := c.Goal(v)
	t := float32(1)
	if c.Smoothing > 0 {
		t = 1 - math32.Exp(-c.Smoothing*dt)
	}
	for i := 0; i < 3; i++ {
		c.Position[i] += (goalPos[i] - c.Position[i]) * t
		c.Target[i] += (goalTarget[i] - c.Target[i]) * t
	}
}
