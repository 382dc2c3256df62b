package docx

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	apperrors "inspection-rpa/internal/common/errors"
	"inspection-rpa/internal/common/logger"
)

// RegionKind identifies the structural context a piece of replaceable text
// lives in. Visible text can sit in any of these contexts, and some of them
// are invisible to a naive paragraph-level search.
type RegionKind string

const (
	RegionBodyRun         RegionKind = "body_run"
	RegionTableCellRun    RegionKind = "table_cell_run"
	RegionShapeRun        RegionKind = "shape_run"
	RegionAnchoredDrawing RegionKind = "anchored_drawing"
	RegionFallbackNode    RegionKind = "fallback_node"
	RegionHeaderFooterRun RegionKind = "header_footer_run"
)

// textRegion is one replaceable text unit: the leaf text nodes of a single
// run, or a single raw text node for the drawing and fallback kinds. The
// replacement counter increments at most once per region.
type textRegion struct {
	kind  RegionKind
	nodes []*etree.Element
}

// ReplaceStats reports how many text units changed, overall and per region
// kind.
type ReplaceStats struct {
	Total    int
	ByRegion map[RegionKind]int
}

// Replace substitutes every occurrence of marker with replacement across
// all structural regions of the document. Replacement is literal and
// case-sensitive; all non-overlapping occurrences within one text node are
// replaced in a single call.
//
// Known limitation: a marker whose characters are split across two adjacent
// runs is not found. Word processors segment text with mixed formatting
// that way; the intended behavior in that case is unspecified, so the
// engine does not attempt to merge runs.
//
// Regions are visited in a fixed order, accumulating into one counter. The
// whole-tree fallback pass runs after the targeted passes: any node those
// passes already rewrote no longer contains the marker, so the fallback
// only catches text the structural passes cannot reach (non-anchored
// drawings, alternate content blocks). A failure inside the fallback pass
// is logged and ignored; the rest of the result stays usable.
func (d *Document) Replace(marker, replacement string, log logger.Logger) *ReplaceStats {
	stats := &ReplaceStats{ByRegion: make(map[RegionKind]int)}
	if marker == "" {
		return stats
	}

	apply := func(regions []textRegion) {
		for _, region := range regions {
			changed := false
			for _, node := range region.nodes {
				text := node.Text()
				if strings.Contains(text, marker) {
					node.SetText(strings.ReplaceAll(text, marker, replacement))
					changed = true
				}
			}
			if changed {
				stats.Total++
				stats.ByRegion[region.kind]++
			}
		}
	}

	body := d.body()
	if body != nil {
		apply(collectBodyRunRegions(body))
		apply(collectTableRegions(body))
		apply(collectShapeRegions(body))
		apply(collectAnchoredDrawingRegions(body))
	}

	func() {
		defer func() {
			if r := recover(); r != nil {
				err := apperrors.NewPartialTraversalFailureError(fmt.Errorf("%v", r))
				log.Warn("catch-all traversal pass failed", map[string]interface{}{
					"source": d.sourcePath,
					"error":  err.Error(),
				})
			}
		}()
		apply(collectFallbackRegions(d.xmlParts[mainPartName].Root()))
	}()

	for _, hf := range d.headerFooterParts() {
		if root := hf.Root(); root != nil {
			apply(collectHeaderFooterRegions(root))
		}
	}

	return stats
}

// collectBodyRunRegions gathers the direct runs of the body's top-level
// paragraphs.
func collectBodyRunRegions(body *etree.Element) []textRegion {
	var regions []textRegion
	for _, p := range childrenByTag(body, "p") {
		regions = append(regions, runRegions(p, RegionBodyRun)...)
	}
	return regions
}

// collectTableRegions recurses into every row and cell, including nested
// tables.
func collectTableRegions(body *etree.Element) []textRegion {
	var regions []textRegion
	for _, tbl := range childrenByTag(body, "tbl") {
		regions = append(regions, tableRegions(tbl)...)
	}
	return regions
}

func tableRegions(tbl *etree.Element) []textRegion {
	var regions []textRegion
	for _, tr := range childrenByTag(tbl, "tr") {
		for _, tc := range childrenByTag(tr, "tc") {
			for _, child := range tc.ChildElements() {
				switch child.Tag {
				case "p":
					regions = append(regions, runRegions(child, RegionTableCellRun)...)
				case "tbl":
					regions = append(regions, tableRegions(child)...)
				}
			}
		}
	}
	return regions
}

// collectShapeRegions gathers the run trees of text frames inside inline
// drawings.
func collectShapeRegions(body *etree.Element) []textRegion {
	var regions []textRegion
	for _, drawing := range paragraphDrawings(body) {
		if firstChildByTag(drawing, "inline") == nil {
			continue
		}
		for _, txbx := range descendantsByTag(drawing, "txbxContent") {
			for _, p := range childrenByTag(txbx, "p") {
				regions = append(regions, runRegions(p, RegionShapeRun)...)
			}
		}
	}
	return regions
}

// collectAnchoredDrawingRegions handles floating shapes anchored to a run.
// Their content is not reachable through the paragraph/run structure, so
// the walk drops to raw leaf text nodes located by tag.
func collectAnchoredDrawingRegions(body *etree.Element) []textRegion {
	var regions []textRegion
	for _, drawing := range paragraphDrawings(body) {
		if firstChildByTag(drawing, "anchor") == nil {
			continue
		}
		for _, t := range descendantsByTag(drawing, "t") {
			if len(t.ChildElements()) == 0 {
				regions = append(regions, textRegion{kind: RegionAnchoredDrawing, nodes: []*etree.Element{t}})
			}
		}
	}
	return regions
}

// collectFallbackRegions walks the entire element tree of the main part and
// targets every leaf text node not consumed by an earlier pass.
func collectFallbackRegions(root *etree.Element) []textRegion {
	if root == nil {
		return nil
	}
	var regions []textRegion
	for _, t := range descendantsByTag(root, "t") {
		if len(t.ChildElements()) == 0 {
			regions = append(regions, textRegion{kind: RegionFallbackNode, nodes: []*etree.Element{t}})
		}
	}
	return regions
}

// collectHeaderFooterRegions gathers the runs of a header or footer part's
// paragraphs.
func collectHeaderFooterRegions(root *etree.Element) []textRegion {
	var regions []textRegion
	for _, p := range childrenByTag(root, "p") {
		regions = append(regions, runRegions(p, RegionHeaderFooterRun)...)
	}
	return regions
}

// runRegions returns one region per run of the paragraph, holding the run's
// direct leaf text nodes.
func runRegions(p *etree.Element, kind RegionKind) []textRegion {
	var regions []textRegion
	for _, r := range childrenByTag(p, "r") {
		nodes := childrenByTag(r, "t")
		if len(nodes) > 0 {
			regions = append(regions, textRegion{kind: kind, nodes: nodes})
		}
	}
	return regions
}

// paragraphDrawings returns every drawing element hanging off a run of a
// top-level body paragraph.
func paragraphDrawings(body *etree.Element) []*etree.Element {
	var drawings []*etree.Element
	for _, p := range childrenByTag(body, "p") {
		for _, r := range childrenByTag(p, "r") {
			drawings = append(drawings, childrenByTag(r, "drawing")...)
		}
	}
	return drawings
}

// Tag matching ignores the namespace prefix: w:t, a:t and any vendor
// prefixed text node all count as "t", mirroring how the document tree is
// actually searched.

func firstChildByTag(e *etree.Element, tag string) *etree.Element {
	for _, child := range e.ChildElements() {
		if child.Tag == tag {
			return child
		}
	}
	return nil
}

func childrenByTag(e *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	for _, child := range e.ChildElements() {
		if child.Tag == tag {
			out = append(out, child)
		}
	}
	return out
}

func descendantsByTag(e *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	for _, child := range e.ChildElements() {
		if child.Tag == tag {
			out = append(out, child)
		}
		out = append(out, descendantsByTag(child, tag)...)
	}
	return out
}
