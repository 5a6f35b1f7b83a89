// Package export materializes the documents as JSON data files for the
// downstream static-site generator.
package export

import (
	"encoding/json"
	"os"
	"path/filepath"

	"folio/pkg/page"
	"folio/pkg/profile"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/sjson"
)

// Export file layout under the content root. The site generator picks these
// up by convention; the paths are not configurable per document.
const (
	dataSubdir      = "data"
	profileFilename = "profile.json"
	pageFilename    = "page.json"
)

// Exporter writes pretty-printed UTF-8 JSON projections of the documents
// into the configured content root. The documents' internal id field never
// leaves the store.
type Exporter struct {
	contentDir string
	log        *logrus.Logger
}

// New creates an exporter rooted at contentDir.
func New(contentDir string, log *logrus.Logger) (e *Exporter) {
	e = &Exporter{
		contentDir: contentDir,
		log:        log,
	}
	return e
}

// ExportProfile writes the profile document data file.
func (e *Exporter) ExportProfile(doc profile.Document) (err error) {
	err = e.write(profileFilename, doc)
	return err
}

// ExportPage writes the page composition data file.
func (e *Exporter) ExportPage(doc page.Document) (err error) {
	err = e.write(pageFilename, doc)
	return err
}

// write serializes the document, strips the internal identifier, and lands
// the file under <contentDir>/data/.
func (e *Exporter) write(filename string, doc any) (err error) {
	var data []byte
	data, err = json.MarshalIndent(doc, "", "  ")
	if err != nil {
		err = errors.Wrapf(err, "failed to encode export document: %s", filename)
		return err
	}

	data, err = sjson.DeleteBytes(data, "id")
	if err != nil {
		err = errors.Wrapf(err, "failed to strip document id: %s", filename)
		return err
	}

	dir := filepath.Join(e.contentDir, dataSubdir)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create export directory: %s", dir)
		return err
	}

	path := filepath.Join(dir, filename)
	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write export file: %s", path)
		return err
	}

	e.log.WithField("path", path).Debug("export file written")
	return err
}
