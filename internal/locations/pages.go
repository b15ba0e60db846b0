package locations

// pages maps suburbs.Identifier(slug) to the factory for that suburb.
var pages = map[string]Factory{
	// Inner Melbourne
	"Carlton":        kindPage(heritageKind, "Carlton North", "Parkville", "North Melbourne"),
	"Fitzroy":        kindPage(heritageKind, "Fitzroy North", "Collingwood", "Abbotsford"),
	"Richmond":       kindPage(heritageKind, "Cremorne", "Burnley", "Abbotsford"),
	"MelbourneCbd":   kindPage(apartmentKind, "Southbank", "Docklands", "East Melbourne"),
	"SouthMelbourne": kindPage(heritageKind, "Albert Park", "Southbank"),
	"Southbank":      kindPage(apartmentKind, "South Wharf", "Melbourne CBD"),
	"Docklands":      kindPage(apartmentKind, "West Melbourne", "Melbourne CBD"),
	"PortMelbourne":  kindPage(coastalKind, "Garden City", "Fishermans Bend"),
	"AlbertPark":     kindPage(heritageKind, "Middle Park", "South Melbourne"),
	"MiddlePark":     kindPage(coastalKind, "Albert Park", "St Kilda West"),

	// Eastern Suburbs
	"Toorak":      kindPage(premiumKind, "South Yarra", "Armadale", "Kooyong"),
	"SouthYarra":  kindPage(apartmentKind, "Toorak", "Prahran", "Windsor"),
	"Prahran":     kindPage(heritageKind, "Windsor", "South Yarra"),
	"Malvern":     kindPage(premiumKind, "Armadale", "Malvern East"),
	"MalvernEast": kindPage(familyKind, "Chadstone", "Glen Iris"),
	"Armadale":    kindPage(premiumKind, "Toorak", "Malvern"),
	"Windsor":     kindPage(heritageKind, "Prahran", "St Kilda East"),
	"Camberwell":  kindPage(premiumKind, "Canterbury", "Hawthorn East", "Surrey Hills"),
	"Hawthorn":    kindPage(heritageKind, "Hawthorn East", "Kew", "Camberwell"),
	"GlenIris":    kindPage(familyKind, "Ashburton", "Malvern East"),

	// Coastal Areas
	"Brighton":     kindPage(premiumKind, "Brighton East", "Middle Brighton", "Hampton"),
	"BrightonEast": kindPage(familyKind, "Brighton", "Bentleigh"),
	"StKilda":      kindPage(coastalKind, "St Kilda East", "St Kilda West", "Elwood"),
	"Hampton":      kindPage(coastalKind, "Hampton East", "Sandringham"),
	"Sandringham":  kindPage(coastalKind, "Black Rock", "Hampton"),
	"Elwood":       kindPage(coastalKind, "St Kilda", "Brighton"),
	"Elsternwick":  kindPage(familyKind, "Ripponlea", "Gardenvale"),
	"Bentleigh":    kindPage(familyKind, "Bentleigh East", "McKinnon"),
	"Mentone":      kindPage(coastalKind, "Parkdale", "Cheltenham"),
	"Mordialloc":   kindPage(coastalKind, "Aspendale", "Parkdale"),

	// Northern Suburbs
	"Brunswick":  kindPage(heritageKind, "Brunswick East", "Brunswick West"),
	"Northcote":  kindPage(heritageKind, "Croxton", "Westgarth"),
	"Thornbury":  kindPage(familyKind, "Northcote", "Preston"),
	"Preston":    kindPage(familyKind, "Thornbury", "Reservoir"),
	"Coburg":     kindPage(familyKind, "Coburg North", "Pascoe Vale South"),
	"Reservoir":  kindPage(familyKind, "Preston", "Kingsbury"),
	"Heidelberg": kindPage(familyKind, "Heidelberg Heights", "Rosanna"),
	"Ivanhoe":    kindPage(familyKind, "Ivanhoe East", "Eaglemont"),
	"Fairfield":  kindPage(familyKind, "Alphington", "Northcote"),

	// Western Suburbs
	"Footscray":    kindPage(heritageKind, "West Footscray", "Seddon"),
	"Yarraville":   kindPage(heritageKind, "Seddon", "Spotswood"),
	"Williamstown": kindPage(coastalKind, "Williamstown North", "Newport"),
	"Maribyrnong":  kindPage(familyKind, "Footscray", "Avondale Heights"),
	"Seddon":       kindPage(heritageKind, "Yarraville", "Footscray"),
	"Spotswood":    kindPage(familyKind, "Newport", "Yarraville"),
	"Newport":      kindPage(familyKind, "Spotswood", "Williamstown"),
	"Altona":       kindPage(coastalKind, "Altona North", "Seaholme"),

	// Southern Suburbs
	"Caulfield":     kindPage(familyKind, "Caulfield North", "Caulfield South", "Caulfield East"),
	"Oakleigh":      kindPage(familyKind, "Oakleigh East", "Huntingdale"),
	"Carnegie":      kindPage(familyKind, "Murrumbeena", "Glen Huntly"),
	"Murrumbeena":   kindPage(familyKind, "Carnegie", "Hughesdale"),
	"Hughesdale":    kindPage(familyKind, "Oakleigh", "Murrumbeena"),
	"Clayton":       kindPage(familyKind, "Clayton South", "Notting Hill"),
	"GlenWaverley":  kindPage(familyKind, "Wheelers Hill", "Mount Waverley"),
	"MountWaverley": kindPage(familyKind, "Glen Waverley", "Ashwood"),
}

// Factories returns a copy of the production page table.
func Factories() map[string]Factory {
	out := make(map[string]Factory, len(pages))
	for identifier, factory := range pages {
		out[identifier] = factory
	}
	return out
}
