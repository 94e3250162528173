package render

import "errors"

// ErrBadColor reports a colour that is not #rrggbb.
var ErrBadColor = errors.New("bad colour")
