package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/MKhiriev/notevault/internal/logger"
	"github.com/MKhiriev/notevault/internal/store"
	"github.com/MKhiriev/notevault/internal/utils"
	"github.com/MKhiriev/notevault/models"
)

// DefaultInlineAttachmentLimit is the decoded size above which an inline
// data: image is moved to the attachment store.
const DefaultInlineAttachmentLimit = 1024

var (
	preBlockRegex = regexp.MustCompile(`(<pre.*?>)(.*?)(</pre>)`)
	newlineRegex  = regexp.MustCompile(`\n|<br>|<br/>`)
	spanRegex     = regexp.MustCompile(`<span class=.*?>(.*?)</span>`)
)

type contentProcessor struct {
	attachments store.AttachmentRepository
	relations   store.RelationRepository
	inlineLimit int
	logger      *logger.Logger
}

func NewContentProcessor(
	attachments store.AttachmentRepository,
	relations store.RelationRepository,
	inlineLimit int,
	log *logger.Logger,
) ContentProcessor {
	if inlineLimit <= 0 {
		inlineLimit = DefaultInlineAttachmentLimit
	}
	return &contentProcessor{
		attachments: attachments,
		relations:   relations,
		inlineLimit: inlineLimit,
		logger:      log,
	}
}

func (p *contentProcessor) PostProcess(ctx context.Context, noteID string, content models.NoteContent) (models.NoteContent, error) {
	body, err := parseBody(content.Data)
	if err != nil {
		return content, fmt.Errorf("parse content: %w", err)
	}

	extracted := 0
	for _, img := range findAll(body, func(n *html.Node) bool { return n.DataAtom == atom.Img }) {
		mime, data, ok := decodeDataURI(getAttr(img, "src"))
		if !ok || len(data) <= p.inlineLimit {
			continue
		}

		attachment := models.Attachment{
			Hash:     utils.ContentHash(data),
			MimeType: mime,
			Data:     data,
		}
		if err = p.attachments.Save(ctx, attachment); err != nil {
			return content, err
		}
		if err = p.relations.Add(ctx,
			models.ItemRef{Type: models.ItemNote, ID: noteID},
			models.ItemRef{Type: models.ItemAttachment, ID: attachment.Hash},
		); err != nil {
			return content, err
		}

		removeAttr(img, "src")
		setAttr(img, "data-hash", attachment.Hash)
		setAttr(img, "data-mime", mime)
		setAttr(img, "data-size", strconv.Itoa(len(data)))
		extracted++
	}

	if extracted == 0 {
		return content, nil
	}

	p.logger.Debug().
		Str("func", "contentProcessor.PostProcess").
		Str("note_id", noteID).
		Int("extracted", extracted).
		Msg("moved inline images to attachments")

	rendered, err := renderBody(body)
	if err != nil {
		return content, err
	}
	return models.NoteContent{Type: content.Type, Data: rendered}, nil
}

func (p *contentProcessor) PreProcess(content models.NoteContent) (models.NoteContent, bool, error) {
	if content.Type != models.ContentTypeTiny {
		return content, false, nil
	}

	data, err := tinyToTiptap(content.Data)
	if err != nil {
		return content, false, err
	}
	return models.NoteContent{Type: models.ContentTypeTiptap, Data: data}, true, nil
}

// tinyToTiptap rewrites legacy editor HTML into the current editor format.
func tinyToTiptap(src string) (string, error) {
	src = strings.ReplaceAll(src, "\n", "<br/>")
	src = preBlockRegex.ReplaceAllStringFunc(src, func(block string) string {
		m := preBlockRegex.FindStringSubmatch(block)
		inner := newlineRegex.ReplaceAllString(m[2], "<br/>")
		inner = spanRegex.ReplaceAllString(inner, "$1")
		return m[1] + inner + m[3]
	})

	body, err := parseBody(src)
	if err != nil {
		return "", err
	}

	for _, table := range findAll(body, func(n *html.Node) bool { return n.DataAtom == atom.Table }) {
		removeAttr(table, "contenteditable")
		if parent := table.Parent; parent != nil && parent.DataAtom == atom.Div {
			replaceWith(parent, table)
		}
	}

	for _, img := range findAll(body, func(n *html.Node) bool {
		return n.DataAtom == atom.Img && n.Parent != nil && n.Parent.DataAtom == atom.P
	}) {
		if img.Parent == nil || img.Parent.Parent == nil {
			continue
		}
		replaceWith(img.Parent, img)
	}

	for _, bogus := range findAll(body, func(n *html.Node) bool { return hasAttr(n, "data-mce-bogus") }) {
		if bogus.Parent != nil {
			bogus.Parent.RemoveChild(bogus)
		}
	}

	for _, n := range findAll(body, func(n *html.Node) bool {
		return hasAttr(n, "data-mce-href") || hasAttr(n, "data-mce-flag")
	}) {
		removeAttr(n, "data-mce-href")
		removeAttr(n, "data-mce-flag")
	}

	return renderBody(body)
}

// decodeDataURI splits "data:<mime>;base64,<payload>".
func decodeDataURI(uri string) (string, []byte, bool) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, false
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, false
	}
	mime, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, false
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, false
	}
	return mime, data, true
}

func parseBody(src string) (*html.Node, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(src), body)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		body.AppendChild(n)
	}
	return body, nil
}

func renderBody(body *html.Node) (string, error) {
	var buf bytes.Buffer
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", fmt.Errorf("render content: %w", err)
		}
	}
	return buf.String(), nil
}

func findAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			found = append(found, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return found
}

// replaceWith puts child where old was and drops old with the rest of its
// children.
func replaceWith(old, child *html.Node) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	old.Parent.InsertBefore(child, old)
	old.Parent.RemoveChild(old)
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	attrs := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Key != key {
			attrs = append(attrs, a)
		}
	}
	n.Attr = attrs
}
