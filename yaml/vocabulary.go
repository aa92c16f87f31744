// Package yaml loads extraction vocabularies from YAML files.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/medroster"
	"gopkg.in/yaml.v3"
)

// LoadVocabulary reads a vocabulary file and layers it over
// medroster.DefaultVocabulary. A list present in the file replaces the
// built-in list of the same name; absent keys keep their defaults.
func LoadVocabulary(path string) (*medroster.Vocabulary, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, medroster.Errorf(medroster.ENOTFOUND, "vocabulary file not found: %s", path)
	} else if err != nil {
		return nil, fmt.Errorf("open vocabulary: %w", err)
	}
	defer f.Close()

	return DecodeVocabulary(f)
}

// DecodeVocabulary decodes a vocabulary document from r. Unknown keys are
// rejected so that a misspelled table name does not silently fall back to
// the default.
func DecodeVocabulary(r io.Reader) (*medroster.Vocabulary, error) {
	vocab := medroster.DefaultVocabulary()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(vocab); err != nil {
		if errors.Is(err, io.EOF) {
			return vocab, nil
		}
		return nil, medroster.Errorf(medroster.EINVALID, "invalid vocabulary: %v", err)
	}
	return vocab, nil
}

// EncodeVocabulary writes vocab as a YAML document.
func EncodeVocabulary(w io.Writer, vocab *medroster.Vocabulary) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(vocab); err != nil {
		return fmt.Errorf("encode vocabulary: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode vocabulary: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}
