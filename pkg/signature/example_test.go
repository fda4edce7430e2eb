package signature_test

import (
	"fmt"

	"github.com/fullpipe/twa-sdk-types/pkg/signature"
)

func ExampleParse() {
	sig, err := signature.Parse("showPopup(params[, callback])")
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println(sig.Name)
	for _, a := range sig.Args {
		fmt.Printf("%s optional=%v\n", a.Name, a.Optional)
	}
	// Output:
	// showPopup
	// params optional=false
	// callback optional=true
}
