package ingest

// Source identifies a retail source whose catalog is ingested
type Source struct {
	Name    string
	Website string
}

// The retail sources the pipeline knows how to ingest
var (
	SourceKitAndAce   = Source{Name: "Kit and Ace", Website: "https://www.kitandace.com/"}
	SourceFrankAndOak = Source{Name: "Frank and Oak", Website: "https://ca.frankandoak.com/"}
	SourceTristan     = Source{Name: "Tristan", Website: "https://www.tristanstyle.com/"}
	SourceReebok      = Source{Name: "Reebok", Website: "https://www.reebok.ca/"}
	SourceVessi       = Source{Name: "Vessi", Website: "https://ca.vessi.com/"}
	SourceKeen        = Source{Name: "Keen", Website: "https://www.keenfootwear.ca/"}
)

// Sources lists every known source in a stable order
var Sources = []Source{
	SourceKitAndAce,
	SourceFrankAndOak,
	SourceTristan,
	SourceReebok,
	SourceVessi,
	SourceKeen,
}
