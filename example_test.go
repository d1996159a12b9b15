package pack_test

import (
	"fmt"

	"github.com/rgbpack/pack"
)

func Example() {
	src := []byte{1, 1, 1, 1, 1}
	tokens, err := pack.Encode(src, 3)
	if err != nil {
		panic(err)
	}
	for _, t := range tokens {
		fmt.Println(t)
	}
	out, err := pack.Decode(nil, tokens, pack.Absolute)
	if err != nil {
		panic(err)
	}
	fmt.Println(out)
	// Output:
	// lit(1)
	// match(0,1,1)
	// match(0,2)
	// [1 1 1 1 1]
}
