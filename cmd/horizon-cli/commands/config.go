package commands

import (
	"path/filepath"

	"horizon-monitoring/lib/configutil"
	"horizon-monitoring/services/monitor"
)

type tagsConfig struct {
	Tags []monitor.Tag `json:"tags"`
}

type queriesConfig struct {
	SearchQueries []monitor.Query `json:"search_queries"`
}

type keywordsConfig struct {
	Categories map[string][]string `json:"kategorie"`
}

func loadTags() ([]monitor.Tag, error) {
	config, err := configutil.ReadConfig[tagsConfig](filepath.Join(configDir, "rcl_subject_tags.json"))
	if err != nil {
		return nil, err
	}
	return config.Tags, nil
}

func loadQueries() ([]monitor.Query, error) {
	config, err := configutil.ReadConfig[queriesConfig](filepath.Join(configDir, "rcl_search_queries.json"))
	if err != nil {
		return nil, err
	}
	return config.SearchQueries, nil
}

func loadKeywords() (map[string][]string, error) {
	config, err := configutil.ReadConfig[keywordsConfig](filepath.Join(configDir, "kprm_keywords.json"))
	if err != nil {
		return nil, err
	}
	return config.Categories, nil
}
