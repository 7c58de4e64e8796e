package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LanguageInfo holds the parts of a languages.yml entry used for detection.
type LanguageInfo struct {
	Type       string   `yaml:"type"` // e.g., programming, data, markup
	Extensions []string `yaml:"extensions"`
	Filenames  []string `yaml:"filenames"`
}

// LanguageMap maps language names (e.g., "Go") to their details.
type LanguageMap map[string]LanguageInfo

// LoadedLanguageData holds the parsed language map and lookup tables.
type LoadedLanguageData struct {
	Langs        LanguageMap
	extensionMap map[string]string // ".go" -> "Go"
	filenameMap  map[string]string // "Makefile" -> "Makefile"
}

// findLanguageFile returns the first languages.yml found in dirs, or "".
func findLanguageFile(dirs []string) string {
	for _, dir := range dirs {
		candidate := filepath.Join(dir, "languages.yml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// loadLanguageData parses the languages.yml at path.
func loadLanguageData(path string) (*LoadedLanguageData, error) {
	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading language file %s: %w", path, err)
	}

	var langs LanguageMap
	if err := yaml.Unmarshal(yamlFile, &langs); err != nil {
		return nil, fmt.Errorf("error parsing language file %s: %w", path, err)
	}

	data := &LoadedLanguageData{
		Langs:        langs,
		extensionMap: make(map[string]string),
		filenameMap:  make(map[string]string),
	}

	for langName, info := range langs {
		for _, ext := range info.Extensions {
			lowerExt := strings.ToLower(ext)
			// Keep the alphabetically first language when several claim an extension.
			if existing, ok := data.extensionMap[lowerExt]; !ok || langName < existing {
				data.extensionMap[lowerExt] = langName
			}
		}
		for _, fname := range info.Filenames {
			if existing, ok := data.filenameMap[fname]; !ok || langName < existing {
				data.filenameMap[fname] = langName
			}
		}
	}

	return data, nil
}

// GetLanguageForFile determines the language for a path, preferring an exact
// filename match over the extension.
func (ld *LoadedLanguageData) GetLanguageForFile(filePath string) (string, bool) {
	if ld == nil {
		return "", false
	}

	baseName := filepath.Base(filePath)
	if lang, ok := ld.filenameMap[baseName]; ok {
		return lang, true
	}

	if ext := strings.ToLower(filepath.Ext(baseName)); ext != "" {
		if lang, ok := ld.extensionMap[ext]; ok {
			return lang, true
		}
	}

	return "", false
}

// annotateLanguages fills in Language for every successful count.
func annotateLanguages(counts []LineCount, ld *LoadedLanguageData) {
	if ld == nil {
		return
	}
	for i := range counts {
		if counts[i].Err != nil {
			continue
		}
		if lang, ok := ld.GetLanguageForFile(counts[i].Name); ok {
			counts[i].Language = lang
		}
	}
}
