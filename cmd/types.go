package cmd

type CLI struct {
	Database string `help:"Database file path (defaults to the configured one)"`
	Verbose  bool   `short:"v" help:"Enable debug logging"`

	Fetch   Fetch    `cmd:"" help:"Fetch captions for one or more videos"`
	Show    Show     `cmd:"" help:"List stored captions"`
	Stats   StatsCmd `cmd:"" help:"Show database statistics"`
	Refetch Refetch  `cmd:"" help:"Fetch all stored videos again"`
	Remove  Remove   `cmd:"" help:"Remove stored captions"`
}

type Fetch struct {
	Videos    []string `arg:"" required:"" help:"Video IDs or URLs"`
	Lang      string   `help:"Caption language code, e.g. en (defaults to the first track)"`
	PlainText bool     `help:"Accepted for compatibility; currently has no effect (text is always returned as sent)"`
	Format    string   `enum:"json,text,srt,markdown" default:"text" help:"Output format (json, text, srt, markdown)"`
	NoStore   bool     `help:"Do not save the captions in the database"`
}

type Show struct {
	ID     *int64 `arg:"" optional:"" help:"Optional entry ID to print the captions of"`
	Format string `enum:"json,text,srt,markdown" default:"text" help:"Output format (json, text, srt, markdown)"`
}

type StatsCmd struct{}

type Refetch struct{}

type Remove struct {
	ID int64 `arg:"" help:"Entry ID to remove"`
}
