package docx

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
	"text_trans_api/models/models"
	"text_trans_api/pkg/logger"
)

// Formatting-preserving DOCX patching. A .docx is a ZIP archive whose
// body lives in word/document.xml; everything else (styles,
// relationships, media) is copied through untouched and the translated
// text is substituted into the body's text nodes in place. This is
// best-effort string substitution over the markup, not a document
// model: every failure path degrades instead of erroring, with a plain
// unformatted document as the last resort.

const documentBodyMember = "word/document.xml"

var textNodeRe = regexp.MustCompile(`(<w:t[^>]*>)(.*?)(</w:t>)`)
var paragraphEndRe = regexp.MustCompile(`</w:p>`)
var whitespaceRunRe = regexp.MustCompile(`\s+`)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

var xmlUnescaper = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
	"&amp;", "&",
)

// EscapeNodeText turns a text node's literal content into a pattern
// fragment: regex metacharacters are neutralized and whitespace runs
// become flexible so re-wrapped source text still matches.
func EscapeNodeText(text string) string {
	return whitespaceRunRe.ReplaceAllString(regexp.QuoteMeta(text), `\s+`)
}

// replaceBetweenTags substitutes the first occurrence of original that
// sits between a closing and an opening tag boundary. Reports whether
// a match was found.
func replaceBetweenTags(body string, original string, translated string) (string, bool) {
	pattern, err := regexp.Compile(`(>[^<]*?)` + EscapeNodeText(original) + `([^>]*?<)`)
	if err != nil {
		return body, false
	}

	loc := pattern.FindStringSubmatchIndex(body)
	if loc == nil {
		return body, false
	}

	// Splice manually so metacharacters in the translated text are
	// never interpreted as replacement syntax.
	prefix := body[loc[2]:loc[3]]
	suffix := body[loc[4]:loc[5]]
	return body[:loc[0]] + prefix + xmlEscaper.Replace(translated) + suffix + body[loc[1]:], true
}

// substituteNode replaces one original node's text with its
// translation: tag-boundary regex match first, plain substring replace
// as the fallback when the pattern does not land. Captured node text is
// unescaped while the body stores entities, so the escaped form is the
// primary match target; the raw form is tried second for bodies that
// carry characters like quotes literally.
func substituteNode(body string, original string, translated string) string {
	if original == "" {
		return body
	}

	targets := []string{xmlEscaper.Replace(original)}
	if targets[0] != original {
		targets = append(targets, original)
	}

	for _, target := range targets {
		if rewritten, ok := replaceBetweenTags(body, target, translated); ok {
			return rewritten
		}
	}

	for _, target := range targets {
		if strings.Contains(body, target) {
			return strings.Replace(body, target, xmlEscaper.Replace(translated), 1)
		}
	}

	return body
}

// RewriteBody patches translated text into the body XML.
//
// With both node lists present, node i's text replaces node i's
// original for the overlapping prefix min(N, M); surplus nodes on
// either side are left alone, so on a count mismatch the remainder of
// the document stays in the source language. With only translated
// nodes, every text tag in document order receives the next node in
// sequence. With neither, the whole translated text lands in the
// single text node if the body has exactly one.
func RewriteBody(body string, originalNodes []string, translatedNodes []string, translatedText string) string {
	switch {
	case len(originalNodes) > 0 && len(translatedNodes) > 0:
		n := len(originalNodes)
		if len(translatedNodes) < n {
			n = len(translatedNodes)
		}
		for i := 0; i < n; i++ {
			body = substituteNode(body, originalNodes[i], translatedNodes[i])
		}
		return body

	case len(translatedNodes) > 0:
		next := 0
		return textNodeRe.ReplaceAllStringFunc(body, func(match string) string {
			if next >= len(translatedNodes) {
				return match
			}
			parts := textNodeRe.FindStringSubmatch(match)
			replacement := parts[1] + xmlEscaper.Replace(translatedNodes[next]) + parts[3]
			next++
			return replacement
		})

	default:
		matches := textNodeRe.FindAllStringSubmatchIndex(body, -1)
		if len(matches) != 1 {
			return body
		}
		loc := matches[0]
		return body[:loc[4]] + xmlEscaper.Replace(translatedText) + body[loc[5]:]
	}
}

// Build produces the translated document archive. It never fails:
// any error or panic along the way degrades to an unformatted
// plain-text document carrying the translated text.
func Build(translatedText string, data *models.DocxData) []byte {
	result, err := build(translatedText, data)
	if err != nil {
		logger.Logger.Warn("docx rebuild degraded to plain output", "error", err.Error())
		return GeneratePlain(translatedText)
	}
	return result
}

func build(translatedText string, data *models.DocxData) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("docx rebuild panic: %v", r)
		}
	}()

	if data == nil {
		return nil, fmt.Errorf("no document structure")
	}

	members, body, err := collectMembers(data)
	if err != nil {
		return nil, err
	}
	if body == "" {
		return nil, fmt.Errorf("no document body")
	}

	body = RewriteBody(body, data.OriginalNodes, data.TranslatedNodes, translatedText)

	buf := new(bytes.Buffer)
	archive := zip.NewWriter(buf)
	for _, member := range members {
		if member.name == documentBodyMember {
			continue
		}
		if err := writeMember(archive, member.name, member.content); err != nil {
			return nil, err
		}
	}
	if err := writeMember(archive, documentBodyMember, []byte(body)); err != nil {
		return nil, err
	}
	if err := archive.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

type archiveMember struct {
	name    string
	content []byte
}

// collectMembers gathers the archive members and the body XML, in
// preference order: the provided file map, then the original file's
// bytes, then a synthesized minimal skeleton.
func collectMembers(data *models.DocxData) ([]archiveMember, string, error) {
	body := data.DocumentXml

	if len(data.Files) > 0 {
		names := make([]string, 0, len(data.Files))
		for name := range data.Files {
			names = append(names, name)
		}
		// Sorted so rebuilds of the same input are byte-identical.
		sort.Strings(names)

		members := make([]archiveMember, 0, len(names))
		for _, name := range names {
			content := data.Files[name]
			members = append(members, archiveMember{name: name, content: decodeMember(name, content)})
			if name == documentBodyMember && body == "" {
				body = content
			}
		}
		return members, body, nil
	}

	if len(data.OriginalFile) > 0 {
		reader, err := zip.NewReader(bytes.NewReader(data.OriginalFile), int64(len(data.OriginalFile)))
		if err != nil {
			return nil, "", err
		}
		var members []archiveMember
		for _, file := range reader.File {
			content, err := readZipMember(file)
			if err != nil {
				return nil, "", err
			}
			members = append(members, archiveMember{name: file.Name, content: content})
			if file.Name == documentBodyMember && body == "" {
				body = string(content)
			}
		}
		return members, body, nil
	}

	if body == "" {
		return nil, "", fmt.Errorf("no archive members and no body")
	}
	return skeletonMembers(), body, nil
}

// decodeMember base64-decodes media members back into binary; other
// members are carried as literal text.
func decodeMember(name string, content string) []byte {
	if strings.HasPrefix(name, "word/media/") {
		decoded, err := base64.StdEncoding.DecodeString(content)
		if err == nil {
			return decoded
		}
	}
	return []byte(content)
}

func readZipMember(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// writeMember adds one member with a fixed header so identical inputs
// produce byte-identical archives.
func writeMember(archive *zip.Writer, name string, content []byte) error {
	w, err := archive.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return err
	}
	_, err = w.Write(content)
	return err
}

// GeneratePlain builds an unformatted document from translated text,
// one paragraph per line. Output is deterministic for a given input.
func GeneratePlain(text string) []byte {
	var paragraphs strings.Builder
	for _, line := range strings.Split(text, "\n") {
		paragraphs.WriteString(`<w:p><w:r><w:t xml:space="preserve">`)
		paragraphs.WriteString(xmlEscaper.Replace(line))
		paragraphs.WriteString(`</w:t></w:r></w:p>`)
	}

	body := xmlHeader + `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		paragraphs.String() + `</w:body></w:document>`

	buf := new(bytes.Buffer)
	archive := zip.NewWriter(buf)
	for _, member := range skeletonMembers() {
		// Skeleton write errors only occur on a broken zip writer;
		// the buffer-backed writer cannot fail here.
		_ = writeMember(archive, member.name, member.content)
	}
	_ = writeMember(archive, documentBodyMember, []byte(body))
	_ = archive.Close()

	return buf.Bytes()
}

// ExtractText pulls the plain text out of a document archive,
// one line per paragraph.
func ExtractText(docxBytes []byte) (string, error) {
	body, err := readBody(docxBytes)
	if err != nil {
		return "", err
	}

	var lines []string
	for _, paragraph := range paragraphEndRe.Split(body, -1) {
		var line strings.Builder
		for _, match := range textNodeRe.FindAllStringSubmatch(paragraph, -1) {
			line.WriteString(xmlUnescaper.Replace(match[2]))
		}
		if line.Len() > 0 {
			lines = append(lines, line.String())
		}
	}

	return strings.Join(lines, "\n"), nil
}

// Capture snapshots an uploaded document for later re-serialization:
// the body XML, the ordered original text nodes, and every other
// archive member (media base64-encoded).
func Capture(docxBytes []byte) (*models.DocxData, error) {
	reader, err := zip.NewReader(bytes.NewReader(docxBytes), int64(len(docxBytes)))
	if err != nil {
		return nil, err
	}

	data := &models.DocxData{
		Files:        make(map[string]string),
		OriginalFile: docxBytes,
	}

	for _, file := range reader.File {
		content, err := readZipMember(file)
		if err != nil {
			return nil, err
		}
		if file.Name == documentBodyMember {
			data.DocumentXml = string(content)
			continue
		}
		if strings.HasPrefix(file.Name, "word/media/") {
			data.Files[file.Name] = base64.StdEncoding.EncodeToString(content)
		} else {
			data.Files[file.Name] = string(content)
		}
	}

	if data.DocumentXml == "" {
		return nil, fmt.Errorf("archive has no %s", documentBodyMember)
	}

	for _, match := range textNodeRe.FindAllStringSubmatch(data.DocumentXml, -1) {
		data.OriginalNodes = append(data.OriginalNodes, xmlUnescaper.Replace(match[2]))
	}

	return data, nil
}

func readBody(docxBytes []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(docxBytes), int64(len(docxBytes)))
	if err != nil {
		return "", err
	}
	for _, file := range reader.File {
		if file.Name != documentBodyMember {
			continue
		}
		content, err := readZipMember(file)
		if err != nil {
			return "", err
		}
		return string(content), nil
	}
	return "", fmt.Errorf("archive has no %s", documentBodyMember)
}

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`

// skeletonMembers is the minimal valid archive around a document body:
// content types, package relationships, and an empty style table.
func skeletonMembers() []archiveMember {
	return []archiveMember{
		{
			name: "[Content_Types].xml",
			content: []byte(xmlHeader +
				`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
				`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
				`<Default Extension="xml" ContentType="application/xml"/>` +
				`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
				`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
				`</Types>`),
		},
		{
			name: "_rels/.rels",
			content: []byte(xmlHeader +
				`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
				`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
				`</Relationships>`),
		},
		{
			name: "word/_rels/document.xml.rels",
			content: []byte(xmlHeader +
				`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
				`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
				`</Relationships>`),
		},
		{
			name: "word/styles.xml",
			content: []byte(xmlHeader +
				`<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"></w:styles>`),
		},
	}
}
