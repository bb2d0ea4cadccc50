package config

const (
	// MaxFolderNameLength is the maximum length for folder names.
	// Limited to 255 so a name fits any VARCHAR(255) column and stays
	// readable in a sidebar.
	MaxFolderNameLength = 255

	// MaxNoteTitleLength is the maximum length for note titles.
	MaxNoteTitleLength = 255

	// MaxSearchTermLength bounds note search input.
	MaxSearchTermLength = 200
)
