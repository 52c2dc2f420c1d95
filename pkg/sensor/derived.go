package sensor

import "context"

// CurrentBuzzerNote returns the note the buzzer plays.
func (a *API) CurrentBuzzerNote(ctx context.Context, id int) (int, error) {
	return a.BuzzerData0(ctx, id)
}

// PlayBuzzerNote starts note for the current ringing time.
func (a *API) PlayBuzzerNote(ctx context.Context, id, note int) error {
	return a.SetBuzzerData0(ctx, id, note)
}

func (a *API) BuzzerRingingTime(ctx context.Context, id int) (int, error) {
	return a.BuzzerData1(ctx, id)
}

// SetBuzzerRingingTime sets how long notes ring, in units of 0.1s.
func (a *API) SetBuzzerRingingTime(ctx context.Context, id, v int) error {
	return a.SetBuzzerData1(ctx, id, v)
}

// ResetSoundDataMaxHold clears the loudest level so the next measurement
// starts fresh.
func (a *API) ResetSoundDataMaxHold(ctx context.Context, id int) error {
	return a.SetSoundDataMaxHold(ctx, id, 0)
}

func (a *API) IsEEPROMLocked(ctx context.Context, id int) (bool, error) {
	v, err := a.Lock(ctx, id)
	return v > 0, err
}

// IsRemoconArrived reports whether IR remote data is waiting to be read.
func (a *API) IsRemoconArrived(ctx context.Context, id int) (bool, error) {
	v, err := a.IRRemoconArrived(ctx, id)
	return v > 0, err
}
