package mailtemplates

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"io/fs"
	"strings"
	texttemplate "text/template"

	"github.com/noirwear/storefront-backend/notifications"
)

// availableTemplates maps the template key to its path inside the loaded
// filesystem. The key is the filename without the ".html" extension.
var availableTemplates map[TemplateFile]string

// templatesFS is the filesystem the templates were loaded from.
var templatesFS fs.FS

// TemplateFile represents an email template key.
type TemplateFile string

// MailTemplate struct represents an email template. It includes the file key
// and the notification placeholder to be sent. The notification placeholder
// includes the plain body template to be used as a fallback for email
// clients that do not support HTML, and the mail subject.
type MailTemplate struct {
	File        TemplateFile
	Placeholder notifications.Notification
}

// Load walks the given filesystem and registers every ".html" file found as
// an available mail template, keyed by filename without the extension.
func Load(fsys fs.FS) error {
	htmlFiles := make(map[TemplateFile]string)
	if err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".html") {
			key := strings.TrimSuffix(d.Name(), ".html")
			htmlFiles[TemplateFile(key)] = path
		}
		return nil
	}); err != nil {
		return err
	}
	availableTemplates = htmlFiles
	templatesFS = fsys
	return nil
}

// ExecTemplate checks if the template file exists in the available mail
// templates and if it does, executes it with the data provided. The subject
// and the plain body placeholders are executed as text templates with the
// same data. It returns the notification with every body filled in.
func (mt MailTemplate) ExecTemplate(data any) (*notifications.Notification, error) {
	path, ok := availableTemplates[mt.File]
	if !ok {
		return nil, fmt.Errorf("template %q not found", mt.File)
	}
	n := &notifications.Notification{}

	subject, err := execText(string(mt.File)+"_subject", mt.Placeholder.Subject, data)
	if err != nil {
		return nil, err
	}
	n.Subject = subject

	tmpl, err := htmltemplate.ParseFS(templatesFS, path)
	if err != nil {
		return nil, err
	}
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, data); err != nil {
		return nil, err
	}
	n.Body = buf.String()

	if mt.Placeholder.PlainBody != "" {
		plain, err := execText(string(mt.File)+"_plain", mt.Placeholder.PlainBody, data)
		if err != nil {
			return nil, err
		}
		n.PlainBody = plain
	}
	return n, nil
}

func execText(name, text string, data any) (string, error) {
	tmpl, err := texttemplate.New(name).Parse(text)
	if err != nil {
		return "", err
	}
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
