// Package docs holds the user documentation, as markdown topics.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

//go:embed *.md
var docs embed.FS

// readme is the topic that lists the other ones.
const readme = "readme"

// GetTopic returns the content of a documentation topic.
func GetTopic(topic string) (string, error) {
	content, err := docs.ReadFile(topic + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", topic, err)
	}
	return string(content), nil
}

// GetTopics returns the content of multiple documentation topics concatenated together.
// The topic "*" stands for all the topics.
func GetTopics(topics ...string) (string, error) {
	var b strings.Builder
	for _, topic := range topics {
		expanded := []string{topic}
		if topic == "*" {
			all, err := GetAllTopics()
			if err != nil {
				return "", err
			}
			expanded = all
		}
		for _, t := range expanded {
			content, err := GetTopic(t)
			if err != nil {
				return "", err
			}
			b.WriteString(content)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// GetAllTopics returns the sorted list of all available topics, except the readme.
func GetAllTopics() ([]string, error) {
	files, err := fs.Glob(docs, "*.md")
	if err != nil {
		return nil, err
	}
	topics := make([]string, 0, len(files))
	for _, file := range files {
		if base := strings.TrimSuffix(path.Base(file), ".md"); base != readme {
			topics = append(topics, base)
		}
	}
	slices.Sort(topics)
	return topics, nil
}
