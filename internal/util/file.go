package util

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// ComicInfo is the subset of the ComicRack schema readers use for CBZ
// metadata.
type ComicInfo struct {
	XMLName     xml.Name `xml:"ComicInfo"`
	Title       string   `xml:"Title,omitempty"`
	Series      string   `xml:"Series,omitempty"`
	Number      string   `xml:"Number,omitempty"`
	Summary     string   `xml:"Summary,omitempty"`
	Writer      string   `xml:"Writer,omitempty"`
	Genre       string   `xml:"Genre,omitempty"`
	Web         string   `xml:"Web,omitempty"`
	PageCount   int      `xml:"PageCount,omitempty"`
	LanguageISO string   `xml:"LanguageISO,omitempty"`
	Year        int      `xml:"Year,omitempty"`
	Month       int      `xml:"Month,omitempty"`
	Day         int      `xml:"Day,omitempty"`
}

// CreateCBZ zips files, in the given order, into output. info is written as
// ComicInfo.xml when not nil.
func CreateCBZ(files []string, output string, info *ComicInfo) error {
	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("cbz: %w", err)
	}

	defer func() {
		if cerr := out.Close(); cerr != nil {
			log.Printf("error closing output file %s: %v", output, cerr)
		}
	}()

	z := zip.NewWriter(out)
	defer func() {
		if cerr := z.Close(); cerr != nil {
			log.Printf("error closing zip writer for %s: %v", output, cerr)
		}
	}()

	for _, file := range files {
		if err := addFileToZip(z, file); err != nil {
			return fmt.Errorf("cbz: %s: %w", file, err)
		}
	}

	if info != nil {
		if err := addComicInfo(z, info); err != nil {
			return fmt.Errorf("cbz: ComicInfo.xml: %w", err)
		}
	}

	return nil
}

func addComicInfo(z *zip.Writer, info *ComicInfo) error {
	data, err := xml.MarshalIndent(info, "", "  ")
	if err != nil {
		return err
	}

	w, err := z.Create("ComicInfo.xml")
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	_, err = w.Write(data)

	return err
}

func addFileToZip(z *zip.Writer, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Printf("error closing input file %s: %v", file, cerr)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}

	header.Name = filepath.Base(file)
	header.Method = zip.Deflate

	w, err := z.CreateHeader(header)
	if err != nil {
		return err
	}

	_, err = io.Copy(w, f)

	return err
}
