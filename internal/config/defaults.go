package config

// defaultCategories is the built-in closed category set, derived from the
// section names the source magazines actually use. Order matters: earlier
// categories win classification ties.
func defaultCategories() []CategoryConfig {
	return []CategoryConfig{
		{
			Name:    "world",
			Aliases: []string{"international", "united states", "the americas", "europe", "asia", "china", "middle east", "africa", "britain"},
			Terms: []string{
				"government", "election", "parliament", "minister", "president",
				"diplomacy", "sanctions", "treaty", "war", "ceasefire",
				"refugees", "border", "vote", "coalition", "policy",
			},
		},
		{
			Name:    "business",
			Aliases: []string{"business this week", "companies", "industry"},
			Terms: []string{
				"company", "companies", "revenue", "profit", "merger",
				"acquisition", "startup", "shareholders", "chief", "executive",
				"factory", "manufacturing", "retail", "customers", "brand",
			},
		},
		{
			Name:    "finance",
			Aliases: []string{"finance and economics", "finance & economics", "economics", "markets"},
			Terms: []string{
				"bank", "banks", "inflation", "interest", "rates", "bonds",
				"currency", "investors", "stockmarket", "economy", "gdp",
				"fiscal", "monetary", "debt", "trade", "tariffs",
			},
		},
		{
			Name:    "science",
			Aliases: []string{"science and technology", "science & technology", "technology"},
			Terms: []string{
				"research", "researchers", "scientists", "study", "data",
				"climate", "energy", "vaccine", "disease", "software",
				"artificial", "intelligence", "algorithm", "particles", "species",
			},
		},
		{
			Name:    "culture",
			Aliases: []string{"books and arts", "books & arts", "arts", "obituary", "1843"},
			Terms: []string{
				"novel", "author", "film", "music", "museum", "exhibition",
				"history", "biography", "painting", "theatre", "literature",
				"language", "critics", "memoir", "portrait",
			},
		},
		{
			Name:    "briefing",
			Aliases: []string{"leaders", "briefing", "the world this week", "letters"},
			Terms: []string{
				"week", "summary", "editorial", "leader", "argues",
				"analysis", "outlook", "agenda", "briefing", "roundup",
			},
		},
	}
}
