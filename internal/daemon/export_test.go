package daemon

import "github.com/deltagreen-vtt/dgsettings/internal/store/kvstore"

var errUnsupportedKV = kvstore.ErrUnsupportedDriver
