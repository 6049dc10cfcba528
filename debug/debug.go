package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Tokenize  bool
	Construct bool
	Coerce    bool
	Render    bool
	Query     bool
}

var d *debug

func init() {
	d = &debug{}
	d.Tokenize = boolEnv("DOWN_DEBUG_TOKENIZE")
	d.Construct = boolEnv("DOWN_DEBUG_CONSTRUCT")
	d.Coerce = boolEnv("DOWN_DEBUG_COERCE")
	d.Render = boolEnv("DOWN_DEBUG_RENDER")
	d.Query = boolEnv("DOWN_DEBUG_QUERY")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Tokenize() bool {
	return d.Tokenize
}
func Construct() bool {
	return d.Construct
}
func Coerce() bool {
	return d.Coerce
}
func Render() bool {
	return d.Render
}
func Query() bool {
	return d.Query
}
