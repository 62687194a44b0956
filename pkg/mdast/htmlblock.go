package mdast

import (
	"bytes"
	"regexp"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// HTML block start and end conditions 1 to 5 from the CommonMark grammar.
// Blocks of these kinds end on a line that contains their end marker, and
// goldmark keeps that line apart as the block's closure line.
var (
	htmlType1Open  = regexp.MustCompile(`(?i)^[ ]{0,3}<(script|pre|style|textarea)(?:\s.*|>.*|/>.*|)(?:\r\n|\n)?$`)
	htmlType1Close = regexp.MustCompile(`(?i)^.*</(?:script|pre|style|textarea)>.*`)
	htmlType2Open  = regexp.MustCompile(`^[ ]{0,3}<!\-\-`)
	htmlType3Open  = regexp.MustCompile(`^[ ]{0,3}<\?`)
	htmlType4Open  = regexp.MustCompile(`^[ ]{0,3}<![A-Z]+.*(?:\r\n|\n)?$`)
	htmlType5Open  = regexp.MustCompile(`^[ ]{0,3}<\!\[CDATA\[`)
)

type htmlEnd func(line []byte) bool

func containsEnd(marker string) htmlEnd {
	return func(line []byte) bool { return bytes.Contains(line, []byte(marker)) }
}

// htmlBlockType classifies an HTML block by its first line. Blocks that end
// at a blank line report a nil end condition.
func htmlBlockType(first []byte) (ast.HTMLBlockType, htmlEnd) {
	switch {
	case htmlType1Open.Match(first):
		return ast.HTMLBlockType1, htmlType1Close.Match
	case htmlType2Open.Match(first):
		return ast.HTMLBlockType2, containsEnd("-->")
	case htmlType3Open.Match(first):
		return ast.HTMLBlockType3, containsEnd("?>")
	case htmlType4Open.Match(first):
		return ast.HTMLBlockType4, containsEnd(">")
	case htmlType5Open.Match(first):
		return ast.HTMLBlockType5, containsEnd("]]>")
	default:
		return ast.HTMLBlockType7, nil
	}
}

// setHTMLBlockLiteral stores value as the lines of block. When value reads
// as a block whose last line is its end line, that line becomes the closure
// line, so the block has the shape goldmark gives the same text when
// parsing it.
func (a *arena) setHTMLBlockLiteral(block *ast.HTMLBlock, value []byte) {
	lines := splitLines(value)
	block.ClosureLine = text.NewSegment(-1, -1)

	if len(lines) == 0 {
		block.HTMLBlockType = ast.HTMLBlockType7
		block.SetLines(text.NewSegments())
		return
	}

	blockType, end := htmlBlockType(lines[0])
	block.HTMLBlockType = blockType

	closure := -1
	if end != nil && !end(lines[0]) {
		for i := 1; i < len(lines); i++ {
			if end(lines[i]) {
				closure = i
				break
			}
		}
	}
	if closure < 0 || closure != len(lines)-1 {
		block.SetLines(a.lines(value))
		return
	}

	body := text.NewSegments()
	for _, line := range lines[:closure] {
		body.Append(a.add(line))
	}
	block.SetLines(body)
	block.ClosureLine = a.add(lines[closure])
}

// splitLines splits value after every newline.
func splitLines(value []byte) [][]byte {
	var lines [][]byte
	for len(value) > 0 {
		line := value
		if i := bytes.IndexByte(value, '\n'); i >= 0 {
			line = value[:i+1]
		}
		lines = append(lines, line)
		value = value[len(line):]
	}
	return lines
}
