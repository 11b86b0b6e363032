package httpapi

import _ "embed"

//go:embed web/index.html
var indexHTML []byte
