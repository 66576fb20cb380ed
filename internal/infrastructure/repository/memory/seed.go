package memory

import "github.com/astorrey/TackleHogs/internal/domain/species"

const (
	SpeciesIDLargemouthBass = "largemouth-bass"
	SpeciesIDSmallmouthBass = "smallmouth-bass"
)

func SeedSpecies() []species.Species {
	return []species.Species{
		{
			ID:             SpeciesIDLargemouthBass,
			Name:           "Largemouth Bass",
			ScientificName: "Micropterus salmoides",
			WaterType:      "freshwater",
			Description:    "The most pursued game fish in North America, common in lakes and slow rivers.",
		},
		{
			ID:             SpeciesIDSmallmouthBass,
			Name:           "Smallmouth Bass",
			ScientificName: "Micropterus dolomieu",
			WaterType:      "freshwater",
			Description:    "Hard-fighting bass that favors cooler, rockier water than its largemouth cousin.",
		},
		{
			ID:             "striped-bass",
			Name:           "Striped Bass",
			ScientificName: "Morone saxatilis",
			WaterType:      "saltwater",
			Description:    "Anadromous striper found along the Atlantic coast and in stocked reservoirs.",
		},
		{
			ID:             "rainbow-trout",
			Name:           "Rainbow Trout",
			ScientificName: "Oncorhynchus mykiss",
			WaterType:      "freshwater",
			Description:    "Cold-water trout prized on light tackle and fly gear.",
		},
		{
			ID:             "brown-trout",
			Name:           "Brown Trout",
			ScientificName: "Salmo trutta",
			WaterType:      "freshwater",
			Description:    "Wary European import that grows large in tailwaters and deep lakes.",
		},
		{
			ID:             "channel-catfish",
			Name:           "Channel Catfish",
			ScientificName: "Ictalurus punctatus",
			WaterType:      "freshwater",
			Description:    "Whiskered bottom feeder taken on cut bait and stink bait after dark.",
		},
		{
			ID:             "blue-catfish",
			Name:           "Blue Catfish",
			ScientificName: "Ictalurus furcatus",
			WaterType:      "freshwater",
			Description:    "Largest North American catfish, a trophy target in big rivers.",
		},
		{
			ID:             "walleye",
			Name:           "Walleye",
			ScientificName: "Sander vitreus",
			WaterType:      "freshwater",
			Description:    "Low-light predator with marble eyes, the table fish of the northern lakes.",
		},
		{
			ID:             "northern-pike",
			Name:           "Northern Pike",
			ScientificName: "Esox lucius",
			WaterType:      "freshwater",
			Description:    "Ambush predator with a mouth full of teeth, loves weedy bays.",
		},
		{
			ID:             "bluegill",
			Name:           "Bluegill",
			ScientificName: "Lepomis macrochirus",
			WaterType:      "freshwater",
			Description:    "Panfish staple and the first catch of many anglers.",
		},
		{
			ID:             "black-crappie",
			Name:           "Black Crappie",
			ScientificName: "Pomoxis nigromaculatus",
			WaterType:      "freshwater",
			Description:    "Schooling panfish caught around brush piles on small jigs.",
		},
		{
			ID:             "redfish",
			Name:           "Red Drum",
			ScientificName: "Sciaenops ocellatus",
			WaterType:      "saltwater",
			Description:    "Copper-colored drum chased on the Gulf and Atlantic flats.",
		},
		{
			ID:             "snook",
			Name:           "Common Snook",
			ScientificName: "Centropomus undecimalis",
			WaterType:      "saltwater",
			Description:    "Line-siding inshore gamefish that hugs mangroves and bridge pilings.",
		},
		{
			ID:             "muskellunge",
			Name:           "Muskellunge",
			ScientificName: "Esox masquinongy",
			WaterType:      "freshwater",
			Description:    "The fish of ten thousand casts.",
		},
	}
}
