// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package htmlmeta

import (
	"bytes"
	"fmt"
	"io"

	"carvel.dev/htmlinc/pkg/filepos"
	"golang.org/x/net/html"
)

var voidElements = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {}, "hr": {}, "img": {},
	"input": {}, "link": {}, "meta": {}, "param": {}, "source": {}, "track": {}, "wbr": {},
}

func IsVoidElement(tag string) bool {
	_, found := voidElements[tag]
	return found
}

type ParserOpts struct {
	// NormalizeIncludes rewrites include tags into self-closing
	// form before tokenizing (see NormalizeIncludeTags)
	NormalizeIncludes bool
}

type Parser struct {
	opts           ParserOpts
	associatedName string

	line int
	col  int
}

func NewParser(opts ParserOpts) *Parser {
	return &Parser{opts: opts}
}

func (p *Parser) ParseBytes(data []byte, associatedName string) (*Fragment, error) {
	p.associatedName = associatedName
	p.line = 1
	p.col = 1

	if p.opts.NormalizeIncludes {
		data = []byte(NormalizeIncludeTags(string(data)))
	}

	fragment := &Fragment{Name: associatedName}
	var openElems []*Element

	appendNode := func(node Node) {
		if len(openElems) == 0 {
			fragment.Children = append(fragment.Children, node)
		} else {
			parent := openElems[len(openElems)-1]
			parent.Children = append(parent.Children, node)
		}
	}

	tokenizer := html.NewTokenizer(bytes.NewReader(data))

	for {
		tokenType := tokenizer.Next()
		if tokenType == html.ErrorToken {
			if tokenizer.Err() == io.EOF {
				break
			}
			return nil, fmt.Errorf("Tokenizing %s: %s", p.describe(), tokenizer.Err())
		}

		raw := string(tokenizer.Raw())
		pos := p.newPosition()
		p.advance(raw)

		switch tokenType {
		case html.TextToken:
			appendNode(&Text{Data: raw, Position: pos})

		case html.CommentToken:
			appendNode(&Raw{Kind: RawComment, Data: raw, Position: pos})

		case html.DoctypeToken:
			appendNode(&Raw{Kind: RawDoctype, Data: raw, Position: pos})

		case html.StartTagToken, html.SelfClosingTagToken:
			token := tokenizer.Token()
			elem := &Element{
				Tag:         token.Data,
				Attrs:       p.attrs(token.Attr),
				SelfClosing: tokenType == html.SelfClosingTagToken,
				Position:    pos,
				startRaw:    raw,
			}
			appendNode(elem)

			if !elem.SelfClosing && !IsVoidElement(elem.Tag) {
				openElems = append(openElems, elem)
			}

		case html.EndTagToken:
			token := tokenizer.Token()

			idx := -1
			for i := len(openElems) - 1; i >= 0; i-- {
				if openElems[i].Tag == token.Data {
					idx = i
					break
				}
			}

			if idx < 0 {
				if p.opts.NormalizeIncludes && token.Data == includeTag {
					// includes are self-closing after normalization
					continue
				}
				appendNode(&Raw{Kind: RawStrayEndTag, Data: raw, Position: pos})
				continue
			}

			// elements opened after the matched one stay implicitly closed
			openElems[idx].endRaw = raw
			openElems = openElems[:idx]

		default:
			panic(fmt.Sprintf("unknown token type %s", tokenType))
		}
	}

	return fragment, nil
}

func (p *Parser) attrs(tokenAttrs []html.Attribute) []Attr {
	var result []Attr
	for _, attr := range tokenAttrs {
		key := attr.Key
		if len(attr.Namespace) > 0 {
			key = attr.Namespace + ":" + key
		}
		result = append(result, Attr{Key: key, Val: attr.Val})
	}
	return result
}

func (p *Parser) newPosition() *filepos.Position {
	return filepos.NewPositionAt(p.line, p.col, p.associatedName)
}

func (p *Parser) advance(raw string) {
	for _, ch := range raw {
		if ch == '\n' {
			p.line++
			p.col = 1
		} else {
			p.col++
		}
	}
}

func (p *Parser) describe() string {
	if len(p.associatedName) > 0 {
		return fmt.Sprintf("'%s'", p.associatedName)
	}
	return "markup"
}
