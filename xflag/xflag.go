// Package xflag contains extra flag value types.
package xflag

import (
	"time"

	"github.com/miku/fincmarc/dateutil"
)

// Date is a flag value for dates in any common layout.
type Date struct {
	time.Time
}

func (d *Date) String() string {
	if d.Time.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}

func (d *Date) Set(value string) error {
	t, err := dateutil.Parse(value)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}
