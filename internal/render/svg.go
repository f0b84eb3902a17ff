package render

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"strconv"

	"hospitalops/internal/layout"
)

const (
	connectorColor = "#1e40af"
	anchorFill     = "#1e3a8a"
	cardFill       = "#ffffff"
	cardStroke     = "#cbd5e1"
)

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// SceneSVG writes a standalone SVG document of the scene: the anchor circle
// labelled YOU, one dashed connector per card and one rectangle per card.
// labels maps entity ids to the text drawn inside each card; ids missing from
// labels are drawn with their id.
func SceneSVG(w io.Writer, scene layout.Scene, p layout.Params, labels map[string]string) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		num(scene.Width), num(scene.Height), num(scene.Width), num(scene.Height))
	fmt.Fprintf(bw, `<defs><marker id="arrowhead" markerWidth="10" markerHeight="7" refX="9" refY="3.5" orient="auto">`+
		`<polygon points="0 0, 10 3.5, 0 7" fill="%s"/></marker></defs>`+"\n", connectorColor)

	for _, c := range scene.Connectors {
		fmt.Fprintf(bw, `<path data-entity-id="%s" d="%s" fill="none" stroke="%s" stroke-width="2" stroke-dasharray="6 4" marker-end="url(#arrowhead)"/>`+"\n",
			html.EscapeString(c.EntityID), c.Path, connectorColor)
	}

	fmt.Fprintf(bw, `<circle cx="%s" cy="%s" r="%s" fill="%s"/>`+"\n",
		num(scene.Anchor.X), num(scene.Anchor.Y), num(scene.AnchorRadius), anchorFill)
	fmt.Fprintf(bw, `<text x="%s" y="%s" text-anchor="middle" dominant-baseline="middle" fill="#ffffff" font-weight="bold">YOU</text>`+"\n",
		num(scene.Anchor.X), num(scene.Anchor.Y))

	for _, card := range scene.Cards {
		label, ok := labels[card.EntityID]
		if !ok {
			label = card.EntityID
		}
		fmt.Fprintf(bw, `<g data-entity-id="%s"><rect x="%s" y="%s" width="%s" height="%s" rx="12" fill="%s" stroke="%s"/>`,
			html.EscapeString(card.EntityID), num(card.Left), num(card.Top),
			num(p.CardWidth), num(p.CardHeight), cardFill, cardStroke)
		fmt.Fprintf(bw, `<text x="%s" y="%s" text-anchor="middle">%s</text></g>`+"\n",
			num(card.Left+p.CardWidth/2), num(card.Top+p.CardHeight/2), html.EscapeString(label))
	}

	fmt.Fprint(bw, "</svg>\n")

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write scene svg: %w", err)
	}
	return nil
}
