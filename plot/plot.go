/*package plot renders radial correlation profiles. It consumes nothing but
the numeric arrays the correlation engine hands out.
*/
package plot

import (
	"fmt"

	plt "github.com/phil-mansfield/pyplot"

	"github.com/yketa/gocg/corr"
)

// Profile plots a radial correlation profile on log-log axes. The zero
// radius point is skipped so the log axis stays finite.
func Profile(fname, label string, pts []corr.Point) {
	rs, cs := split(pts)

	plt.Figure()
	plt.Plot(rs, cs, plt.LW(3))

	plt.Title(fmt.Sprintf(`radial $%s$`, label))
	plt.XLabel(`$r$`, plt.FontSize(16))
	plt.YLabel(fmt.Sprintf(`$%s$`, label), plt.FontSize(16))

	plt.XScale("log")
	plt.YScale("log")

	plt.Grid(plt.Axis("y"))
	plt.Grid(plt.Axis("x"), plt.Which("both"))
	plt.SaveFig(fname)
}

// Execute flushes every queued figure.
func Execute() { plt.Execute() }

func split(pts []corr.Point) (rs, cs []float64) {
	for _, p := range pts {
		if p.R == 0 {
			continue
		}
		rs = append(rs, p.R)
		cs = append(cs, p.C)
	}
	return rs, cs
}
