package annotator

import (
	"fmt"
	"io"
	"strings"
)

var bannerRule = strings.Repeat("═", 60)

// PrintBanner writes the startup banner with the number of recognized object
// types and the key bindings.
func PrintBanner(w io.Writer, classes int) {
	fmt.Fprintln(w, bannerRule)
	fmt.Fprintln(w, "🔍 ENHANCED OBJECT DETECTION")
	fmt.Fprintf(w, "📊 Detecting %d different object types\n", classes)
	fmt.Fprintln(w, "Press 'q' to quit | Press 'h' to hide/show labels")
	fmt.Fprintln(w, bannerRule)
}
