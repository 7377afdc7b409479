package deck

// Reference tables for the analyzer. Keys and entries are canonical card
// names; the synergy table is checked in both directions.

var synergyTable = map[string][]string{
	"Hog Rider":        {"Earthquake", "Fireball", "Freeze", "Ice Spirit", "Skeletons", "Ice Golem", "Cannon", "Musketeer"},
	"Balloon":          {"Lava Hound", "Freeze", "Arrows", "Mega Minion", "Skeleton Dragons", "Lumberjack", "Miner"},
	"Golem":            {"Night Witch", "Baby Dragon", "Lightning", "Tornado", "Lumberjack", "Mega Minion"},
	"X-Bow":            {"Tesla", "Archers", "Ice Spirit", "Skeletons", "Knight", "Fireball", "The Log"},
	"Graveyard":        {"Freeze", "Poison", "Knight", "Barbarian Barrel", "Ice Wizard", "Tornado", "Baby Dragon"},
	"Miner":            {"Poison", "Bats", "Spear Goblins", "Wall Breakers", "Skeleton Army", "Goblin Gang"},
	"Royal Giant":      {"Lightning", "Fisherman", "Hunter", "Earthquake", "Fire Spirit", "Mother Witch"},
	"Giant":            {"Graveyard", "Sparky", "Mini P.E.K.K.A", "Musketeer", "Electro Wizard", "Zap"},
	"P.E.K.K.A":        {"Battle Ram", "Bandit", "Magic Archer", "Electro Wizard", "Poison", "Zap", "Dark Prince"},
	"Lava Hound":       {"Balloon", "Mega Minion", "Skeleton Dragons", "Fireball", "Arrows", "Tombstone"},
	"Three Musketeers": {"Battle Ram", "Elixir Collector", "Ice Golem", "Heal Spirit", "Bandit"},
	"Mortar":           {"Skeleton King", "Archers", "Knight", "Skeletons", "Arrows", "The Log", "Spear Goblins"},
	"Goblin Barrel":    {"Princess", "Rocket", "Knight", "Goblin Gang", "Inferno Tower", "The Log", "Ice Spirit"},
	"Sparky":           {"Giant", "Goblin Gang", "Zap", "Tornado", "Electro Wizard", "Dark Prince"},
}

// comboLabels names well-known pairs. Lookups try both orders.
var comboLabels = map[[2]string]string{
	{"Hog Rider", "Earthquake"}:   "Building Destroyer",
	{"Balloon", "Lava Hound"}:     "Air Beatdown",
	{"Balloon", "Freeze"}:         "Freeze Combo",
	{"Miner", "Poison"}:           "Chip Control",
	{"Goblin Barrel", "Princess"}: "Log Bait",
	{"X-Bow", "Tesla"}:            "Defensive Lock",
	{"Golem", "Night Witch"}:      "Death Damage",
	{"P.E.K.K.A", "Battle Ram"}:   "Dual Threat",
	{"Graveyard", "Freeze"}:       "Spell Combo",
	{"Royal Giant", "Lightning"}:  "Building Clear",
}

const defaultComboLabel = "Support"

var counterTable = map[string][]string{
	"Mega Knight":      {"P.E.K.K.A", "Mini P.E.K.K.A", "Knight", "Valkyrie", "Prince", "Inferno Dragon", "Inferno Tower"},
	"Balloon":          {"Mega Minion", "Musketeer", "Wizard", "Inferno Dragon", "Bats", "Minions", "Electro Wizard"},
	"Hog Rider":        {"Cannon", "Tesla", "Mini P.E.K.K.A", "Skeleton Army", "Tombstone", "Goblin Cage"},
	"Golem":            {"Inferno Tower", "Inferno Dragon", "P.E.K.K.A", "Mini P.E.K.K.A", "Skeleton Army"},
	"Sparky":           {"Electro Wizard", "Zap", "Lightning", "Rocket", "Electro Spirit"},
	"X-Bow":            {"Earthquake", "Lightning", "Mega Knight", "Royal Giant", "Rocket"},
	"Elite Barbarians": {"Skeleton Army", "Guards", "Valkyrie", "Bowler", "Mega Knight"},
	"Witch":            {"Valkyrie", "Dark Prince", "Poison", "Fireball + small spell"},
	"Wizard":           {"Lightning", "Fireball", "Rocket", "Mini P.E.K.K.A"},
	"Three Musketeers": {"Fireball", "Lightning", "Rocket", "Poison", "Mega Knight"},
	"Goblin Barrel":    {"The Log", "Zap", "Arrows", "Barbarian Barrel", "Snowball"},
	"Graveyard":        {"Poison", "Valkyrie", "Wizard", "Bomber", "Arrows"},
	"Skeleton Army":    {"The Log", "Zap", "Arrows", "Barbarian Barrel", "Fire Spirit", "Electro Spirit"},
}

// Named card groups used by the archetype cascade.
var (
	siegeBuildings = []string{"X-Bow", "Mortar"}
	baitCards      = []string{"Goblin Barrel", "Princess", "Goblin Gang", "Skeleton Army"}
	beatdownTanks  = []string{"Golem", "Lava Hound", "Elixir Golem", "Three Musketeers"}
	spamCards      = []string{"Battle Ram", "Bandit", "Dark Prince", "Ram Rider", "Royal Hogs"}
)

var matchupTable = map[Archetype]Matchup{
	ArchetypeCycle: {
		Good:        []string{"Beatdown", "Heavy decks", "Golem", "Lava"},
		Bad:         []string{"Earthquake decks", "Spell cycle", "Fast beatdown"},
		Description: "Strong vs slow decks, weak vs building destruction",
	},
	ArchetypeBeatdown: {
		Good:        []string{"Siege", "Light cycle", "Chip decks"},
		Bad:         []string{"Inferno decks", "Tank killers", "Heavy spells"},
		Description: "Overwhelms light defenses, struggles vs high DPS",
	},
	ArchetypeBridgeSpam: {
		Good:        []string{"Beatdown", "Slow decks", "Elixir Collector"},
		Bad:         []string{"Splash units", "Swarm", "Valkyrie decks"},
		Description: "Punishes slow plays, vulnerable to area damage",
	},
	ArchetypeBait: {
		Good:        []string{"One spell decks", "Log only", "Heavy decks"},
		Bad:         []string{"Multi-spell", "Triple spell", "Arrows+Log"},
		Description: "Dominates single spell, destroyed by spell variety",
	},
	ArchetypeSiege: {
		Good:        []string{"No tank decks", "Light cycle", "Spell bait"},
		Bad:         []string{"Earthquake", "Lightning", "Rocket", "Mega Knight"},
		Description: "Controls vs cycle, destroyed by building counters",
	},
	ArchetypeControl: {
		Good:        []string{"Beatdown", "Bridge spam", "Aggressive decks"},
		Bad:         []string{"Spell cycle", "Rocket decks", "Siege"},
		Description: "Defends everything, struggles vs passive play",
	},
}

var defaultMatchup = Matchup{
	Good:        []string{"Depends on execution"},
	Bad:         []string{"Depends on opponent"},
	Description: "Matchups vary based on player skill",
}

func synergizes(a, b string) bool {
	return containsString(synergyTable[a], b) || containsString(synergyTable[b], a)
}

func comboLabel(a, b string) string {
	if label, ok := comboLabels[[2]string{a, b}]; ok {
		return label
	}
	if label, ok := comboLabels[[2]string{b, a}]; ok {
		return label
	}
	return defaultComboLabel
}

// strategyTable holds a short play guide per archetype.
var strategyTable = map[Archetype]string{
	ArchetypeCycle: "Cycle your cards quickly to outcycle your opponent's counters. Play defensively and chip away at their tower. " +
		"Use your cheap cards to gain elixir advantages on defense.",
	ArchetypeBeatdown: "Build large pushes behind your tank. Defend and build elixir advantage during single elixir, then make massive pushes in double elixir. " +
		"Support your tank with splash damage and anti-air troops.",
	ArchetypeSiege: "Place your win condition at the bridge and defend it with buildings and troops. " +
		"Control the tempo of the match and don't overcommit on offense.",
	ArchetypeControl: "Play solid defense and counter-push with surviving troops. " +
		"Make positive elixir trades on defense, then punish your opponent when they're low on elixir.",
	ArchetypeBait: "Bait out the spells that answer your main threat, then punish with the threat they can no longer answer. " +
		"Track which spells your opponent has used.",
	ArchetypeBridgeSpam: "Apply relentless pressure in both lanes and force your opponent to split elixir. " +
		"Punish every slow commit at the back.",
	ArchetypeMidrange: "Focus on quick, aggressive pushes with your win condition. Use your cheap cards to cycle and defend efficiently. " +
		"Apply pressure constantly to keep your opponent on the defensive.",
}
