package render

import "errors"

// Multi fans one frame out to several drivers. Every driver is written even
// if an earlier one fails; the errors are joined.
type Multi []Driver

func (m Multi) Write(buf []Color) error {
	var errs []error
	for _, d := range m {
		if d == nil {
			continue
		}
		if err := d.Write(buf); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Dimmers fans the backlight level out like Multi does for frames.
type Dimmers []Dimmer

func (m Dimmers) SetLevel(level int) error {
	var errs []error
	for _, d := range m {
		if d == nil {
			continue
		}
		if err := d.SetLevel(level); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
