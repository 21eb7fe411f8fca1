package domain

// Analysis is the summary a backend derives from a GitHub profile.
type Analysis struct {
	Login        string          `json:"login"`
	PublicRepos  int             `json:"publicRepos"`
	TopLanguages []LanguageBytes `json:"topLanguages"`
}

// LanguageBytes pairs a language with the number of bytes written in it.
type LanguageBytes struct {
	Lang  string `json:"lang"`
	Bytes int64  `json:"bytes"`
}
