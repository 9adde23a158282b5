package interpreter

import "github.com/eugecm/lox/pkg/runtime"

// completion is the outcome of executing a statement. A return statement
// produces returning=true with its value; blocks and loops stop and pass it
// up unchanged until the enclosing call unwraps it. It is never an error.
type completion struct {
	returning bool
	value     runtime.Value
}

var normal = completion{}

func returning(value runtime.Value) completion {
	return completion{returning: true, value: value}
}
