package trackname

import "fmt"

// House strategies.

func (g *Generator) houseSoulful() string {
	feelings := []string{"Love", "Joy", "Soul", "Heart", "Spirit", "Feel", "Vibe", "Groove"}
	subjects := []string{"Music", "Rhythm", "Dance", "Night", "Day", "Life", "Dreams", "Paradise"}

	switch g.rng.Intn(4) {
	case 0:
		return g.pick(feelings) + " & " + g.pick(subjects)
	case 1:
		return "Can You " + g.pick(feelings) + " It"
	case 2:
		return g.pick(subjects) + " of " + g.pick(feelings)
	default:
		return "Deep " + g.pick(feelings)
	}
}

func (g *Generator) houseGroovy() string {
	grooves := []string{"Funky", "Groovin", "Movin", "Shakin", "Bumpin", "Jumpin"}
	times := []string{"All Night", "Til Dawn", "Forever", "Right Now", "Tonight", "Today"}

	switch g.rng.Intn(4) {
	case 0:
		return g.pick(grooves) + " " + g.pick(times)
	case 1:
		return "Let's Get " + g.pick(grooves)
	case 2:
		return g.pick(grooves) + " Sensation"
	default:
		return "Keep On " + g.pick(grooves)
	}
}

func (g *Generator) houseClassic() string {
	classics := []string{
		"Music Is the Answer", "House Nation", "Move Your Body", "Can You Feel It",
		"Promised Land", "Show Me Love", "Strings of Life", "The Choice Is Yours",
		"Finally", "Lady", "Gypsy Woman", "Good Life",
	}

	switch g.rng.Intn(3) {
	case 0:
		return g.pick(classics)
	case 1:
		return g.pick(classics) + " (ACIDGRID Mix)"
	default:
		return fmt.Sprintf("%s House Anthem %d", g.pick([]string{"Deep", "Soulful", "Jackin"}), g.number(1, 99))
	}
}

func (g *Generator) houseDisco() string {
	disco := []string{"Disco", "Boogie", "Funk", "Rhythm", "Dancefloor", "Studio"}
	years := []string{"54", "77", "84", "87", "88", "91", "94", "95", "97", "98", "99"}

	switch g.rng.Intn(3) {
	case 0:
		return g.pick(disco) + " " + g.pick(years)
	case 1:
		return "Le Freak (C'est " + g.pick([]string{"Chic", "House", "Deep"}) + ")"
	default:
		return g.pick(disco) + " Fever"
	}
}

// Techno strategies.

func (g *Generator) technoDystopian() string {
	prefixes := []string{
		"Death of", "Fall of", "Last", "Final", "Burning", "Toxic", "Radioactive",
		"Abandoned", "Corrupted", "Destroyed", "Forgotten", "Lost", "Dead",
	}
	subjects := []string{
		"Paradise", "Utopia", "Tomorrow", "Dreams", "Hope", "Humanity", "Gods",
		"Angels", "Heaven", "Earth", "Reality", "Future", "Civilization",
	}

	switch g.rng.Intn(4) {
	case 0:
		return g.pick(prefixes) + " " + g.pick(subjects)
	case 1:
		return "When " + g.pick(subjects) + " Dies"
	case 2:
		return "After the " + g.pick(subjects)
	default:
		return "No More " + g.pick(subjects)
	}
}

func (g *Generator) technoUnderground() string {
	locations := []string{
		"Warehouse", "Bunker", "Tunnel", "Basement", "Squat", "Factory",
		"Powerplant", "Sewers", "Catacombs", "Ruins", "Wasteland", "Underworld",
	}
	actions := []string{
		"Rave", "Riot", "Revolution", "Resistance", "Rampage", "Ritual",
		"Massacre", "Mayhem", "Madness", "Meltdown", "Mutation", "Insurrection",
	}

	switch g.rng.Intn(4) {
	case 0:
		return g.pick(locations) + " " + g.pick(actions)
	case 1:
		return "Illegal " + g.pick(actions)
	case 2:
		return fmt.Sprintf("%dAM %s", g.number(3, 6), g.pick(locations))
	default:
		return fmt.Sprintf("Underground %s %d", g.pick(actions), g.number(1, 99))
	}
}

func (g *Generator) technoFuturistic() string {
	tech := []string{
		"Cyborg", "Android", "AI", "Quantum", "Neural", "Cyber", "Digital",
		"Virtual", "Holographic", "Synthetic", "Bionic", "Nanotech", "Matrix",
	}
	concepts := []string{
		"Uprising", "Singularity", "Apocalypse", "Revolution", "Extinction",
		"Evolution", "Transcendence", "Awakening", "Insurgency", "Prophecy",
	}

	switch g.rng.Intn(4) {
	case 0:
		return g.pick(tech) + " " + g.pick(concepts)
	case 1:
		return fmt.Sprintf("Year %d", g.number(2077, 3000))
	case 2:
		return fmt.Sprintf("Sector %c-%d", byte('A'+g.rng.Intn(26)), g.number(100, 999))
	default:
		return fmt.Sprintf("Protocol %03d: %s", g.number(1, 999), g.pick(concepts))
	}
}

func (g *Generator) technoMachineSoul() string {
	machine := []string{
		"Machine God", "Steel Heart", "Iron Will", "Chrome Dreams",
		"Mechanical Soul", "Digital Blood", "Silicon Brain", "Carbon Ghost",
		"Metal Fatigue", "Rust Never Sleeps", "Gears of War", "Engine Failure",
		"System Malfunction", "Core Breach", "Memory Leak", "Stack Overflow",
	}

	switch g.rng.Intn(3) {
	case 0:
		return g.pick(machine)
	case 1:
		return fmt.Sprintf("Unit %04d - %s", g.number(1, 9999), g.pick([]string{"Online", "Offline", "Rogue", "Awakened"}))
	default:
		return fmt.Sprintf("Error %d: %s", g.number(100, 999), g.pick([]string{"Critical", "Fatal", "Unknown", "Recursive"}))
	}
}

// Hard tekno strategies.

func (g *Generator) hardTeknoAggressive() string {
	aggressive := []string{
		"DESTROY", "ANNIHILATE", "OBLITERATE", "DEVASTATE", "PULVERIZE", "DEMOLISH",
		"MUTILATE", "TERMINATE", "EXTERMINATE", "ERADICATE",
	}
	targets := []string{
		"EVERYTHING", "ALL", "REALITY", "EXISTENCE", "THE SYSTEM", "THE WORLD",
		"SANITY", "LIMITS", "BOUNDARIES", "CONTROL",
	}

	switch g.rng.Intn(3) {
	case 0:
		return g.pick(aggressive) + " " + g.pick(targets)
	case 1:
		return fmt.Sprintf("%d BPM %s", g.number(150, 200), g.pick(aggressive))
	default:
		return "MAXIMUM " + g.pick(aggressive)
	}
}

func (g *Generator) hardTeknoDistorted() string {
	prefixes := []string{"X", "XXX", "XXXXX", "###", "*****", ">>", "<<", "//", "\\\\"}
	core := []string{"KICK", "BASS", "NOISE", "STATIC", "ERROR", "GLITCH", "CRASH", "BREAK"}
	suffixes := []string{"OVERLOAD", "DISTORTION", "SATURATION", "COMPRESSION", "CRUSH"}

	switch g.rng.Intn(3) {
	case 0:
		return g.pick(prefixes) + g.pick(core) + g.pick(prefixes)
	case 1:
		return fmt.Sprintf("%s %s %d", g.pick(core), g.pick(suffixes), g.number(100, 999))
	default:
		return fmt.Sprintf("[%s] x%d", g.pick(core), g.number(3, 9))
	}
}

func (g *Generator) hardTeknoChaos() string {
	chaos := []string{
		"Pure Fucking Chaos", "Absolute Madness", "Total Destruction",
		"Complete Annihilation", "Ultimate Violence", "Perfect Storm",
		"Savage Beauty", "Brutal Elegance", "Violent Delight", "Beautiful Disaster",
		"Organized Chaos", "Controlled Explosion", "Calculated Risk", "Measured Insanity",
	}

	switch g.rng.Intn(3) {
	case 0:
		return g.pick(chaos)
	case 1:
		return fmt.Sprintf("%s v%d.%d", g.pick(chaos), g.number(1, 9), g.number(0, 9))
	default:
		return "WARNING: " + g.pick(chaos)
	}
}

func (g *Generator) hardTeknoRawEnergy() string {
	power := []string{
		"Voltage", "Overdrive", "Turbo", "Nitro", "Nuclear", "Atomic",
		"Explosive", "Volcanic", "Seismic", "Thunder", "Lightning", "Inferno",
	}
	intensity := []string{
		"Overload", "Meltdown", "Breakdown", "Burnout", "Blackout", "Whiteout",
		"Surge", "Blast", "Impact", "Collision", "Detonation", "Eruption",
	}

	switch g.rng.Intn(4) {
	case 0:
		return g.pick(power) + " " + g.pick(intensity)
	case 1:
		return "Maximum " + g.pick(power)
	case 2:
		return fmt.Sprintf("%d %s", g.number(1000, 9999), g.pick([]string{"Volts", "BPM", "Hz", "dB"}))
	default:
		return "Critical " + g.pick(intensity)
	}
}

// Breakbeat strategies.

func (g *Generator) breakbeatFunky() string {
	funky := []string{"Funky", "Groovy", "Jazzy", "Smooth", "Fresh", "Fly"}
	elements := []string{"Breaks", "Beats", "Drums", "Session", "Vibe", "Flow"}

	switch g.rng.Intn(3) {
	case 0:
		return g.pick(funky) + " " + g.pick(elements)
	case 1:
		return fmt.Sprintf("Amen Brother %d", g.number(1, 99))
	default:
		return "Apache " + g.pick([]string{"Remix", "Break", "Flip", "Edit"})
	}
}

func (g *Generator) breakbeatUrban() string {
	urban := []string{"Block", "Street", "City", "Urban", "Underground", "Concrete"}
	actions := []string{"Bounce", "Move", "Roll", "Rock", "Shake", "Swing"}

	switch g.rng.Intn(3) {
	case 0:
		return g.pick(urban) + " " + g.pick(actions)
	case 1:
		return g.pick(actions) + " the " + g.pick(urban)
	default:
		return fmt.Sprintf("%s Beats Vol. %d", g.pick(urban), g.number(1, 9))
	}
}

func (g *Generator) breakbeatOldSchool() string {
	classics := []string{
		"Incredible Bongo Band", "Think Break", "Funky Drummer", "Cold Sweat",
		"Rockit", "Planet Rock", "Looking for the Perfect Beat",
	}

	switch g.rng.Intn(3) {
	case 0:
		return g.pick(classics) + " (Flip)"
	case 1:
		return "90s " + g.pick([]string{"Jungle", "Breakbeat", "Big Beat"}) + " Style"
	default:
		return fmt.Sprintf("Vintage Breaks %d", g.number(91, 99))
	}
}

// IDM strategies.

func (g *Generator) idmGlitch() string {
	glitches := []string{"glitch", "buffer", "overflow", "underflow", "null", "void", "NaN"}
	processes := []string{"process", "thread", "loop", "recursion", "iteration", "function"}

	switch g.rng.Intn(3) {
	case 0:
		return g.pick(glitches) + "." + g.pick(processes)
	case 1:
		return fmt.Sprintf("[%s:%d]", g.pick(glitches), g.number(0, 99))
	default:
		return g.pick(processes) + "(" + g.pick(glitches) + ")"
	}
}

func (g *Generator) idmComplex() string {
	terms := []string{"fibonacci", "fractal", "algorithm", "polynomial", "matrix", "vector"}
	concepts := []string{"consciousness", "perception", "reality", "dimension", "infinity"}

	switch g.rng.Intn(3) {
	case 0:
		return g.pick(terms) + "_" + g.pick(concepts)
	case 1:
		return g.pick(concepts) + "." + g.pick([]string{"mp3", "wav", "flac", "ogg"})
	default:
		return fmt.Sprintf("%s[%d]", g.pick(terms), g.number(1, 16))
	}
}

func (g *Generator) idmExperimental() string {
	prefixes := []string{"exp", "test", "prototype", "alpha", "beta", "dev"}

	switch g.rng.Intn(3) {
	case 0:
		return fmt.Sprintf("%s_%d.%d.%d", g.pick(prefixes), g.number(0, 9), g.number(0, 9), g.number(0, 99))
	case 1:
		return fmt.Sprintf("untitled_%03d", g.number(1, 999))
	default:
		return fmt.Sprintf("draft_%d_%s", g.number(1, 99), g.pick([]string{"a", "b", "c", "d"}))
	}
}

// Jungle strategies.

func (g *Generator) jungleRagga() string {
	ragga := []string{"Bun Dem", "Champion Sound", "Original", "Wicked", "Junglist", "Rude Boy"}
	massive := []string{"Massive", "Heavyweight", "Thunder", "Sound Boy", "Big Up"}

	switch g.rng.Intn(3) {
	case 0:
		return g.pick(ragga) + " " + g.pick(massive)
	case 1:
		return "Inna " + g.pick([]string{"Jungle", "Dancehall", "Sound System"})
	default:
		return g.pick(massive) + " Business"
	}
}

func (g *Generator) jungleMassive() string {
	descriptors := []string{"Super Sharp", "Incredible", "The Original", "Deadly"}
	elements := []string{"Shooter", "Killa", "Murderer", "Destroyer"}

	switch g.rng.Intn(3) {
	case 0:
		return g.pick(descriptors) + " " + g.pick(elements)
	case 1:
		return "Pulp Fiction (Jungle " + g.pick([]string{"VIP", "Remix", "Mix"}) + ")"
	default:
		return fmt.Sprintf("Valley of the Shadows %d", g.number(1, 9))
	}
}

func (g *Generator) jungleClassic() string {
	classics := []string{
		"Atlantis", "Terrorist", "Pulp Fiction", "Incredible", "Original Nuttah",
		"Super Sharp Shooter", "Renegade Snares", "Music",
	}

	switch g.rng.Intn(3) {
	case 0:
		return g.pick(classics)
	case 1:
		return g.pick(classics) + " (Remix)"
	default:
		return "Sound of the " + g.pick([]string{"Jungle", "Drums", "Underground"})
	}
}

// Hip-hop strategies.

func (g *Generator) hipHopBoomBap() string {
	descriptors := []string{"Raw", "Rough", "Rugged", "Hard", "Heavy", "Dirty"}
	elements := []string{"Beats", "Rhymes", "Drums", "Bass", "Loops", "Samples"}

	switch g.rng.Intn(3) {
	case 0:
		return g.pick(descriptors) + " " + g.pick(elements)
	case 1:
		return fmt.Sprintf("Boom Bap %s %d", g.pick([]string{"Session", "Chronicles", "Files", "Vol"}), g.number(1, 9))
	default:
		return g.pick(descriptors) + " & " + g.pick(descriptors)
	}
}

func (g *Generator) hipHopStreet() string {
	locations := []string{"Brooklyn", "Queens", "Bronx", "Harlem", "Southside", "Westside"}
	vibes := []string{"State of Mind", "Story", "Dreams", "Nights", "Days", "Life"}

	switch g.rng.Intn(3) {
	case 0:
		return g.pick(locations) + " " + g.pick(vibes)
	case 1:
		return "Straight Outta " + g.pick(locations)
	default:
		return "The " + g.pick(vibes)
	}
}

func (g *Generator) hipHopClassic() string {
	classics := []string{
		"93 Til Infinity", "The World Is Yours", "It Was a Good Day",
		"C.R.E.A.M.", "Shook Ones", "Electric Relaxation", "Award Tour",
	}

	switch g.rng.Intn(3) {
	case 0:
		return g.pick(classics)
	case 1:
		return fmt.Sprintf("Golden Era %d", g.number(88, 99))
	default:
		return "SP-1200 " + g.pick([]string{"Sessions", "Beats", "Files"})
	}
}

// Trap strategies.

func (g *Generator) trapModern() string {
	modern := []string{"Flex", "Sauce", "Wave", "Mood", "Vibe", "Energy", "Drip"}
	intensifiers := []string{"Too", "So", "Real", "Big", "Hard", "Different"}

	switch g.rng.Intn(3) {
	case 0:
		return g.pick(intensifiers) + " " + g.pick(modern)
	case 1:
		return g.pick(modern) + " Mode"
	default:
		return "No " + g.pick([]string{"Cap", "Limit", "Chill", "Sleep"})
	}
}

func (g *Generator) trapStreet() string {
	elements := []string{"Bankroll", "Traphouse", "Mob", "Gang", "Squad", "Crew"}
	actions := []string{"Run It", "Get It", "Stack It", "Count It", "Flip It"}

	switch g.rng.Intn(3) {
	case 0:
		return g.pick(elements) + " " + g.pick(actions)
	case 1:
		return g.pick(actions) + " Up"
	default:
		return "In the " + g.pick([]string{"Trap", "Lab", "Studio", "Streets"})
	}
}

func (g *Generator) trap808() string {
	descriptors := []string{"Knockin", "Bangin", "Slappin", "Bumpin", "Hittin"}
	elements := []string{"808", "Bass", "Sub", "Kick", "Beat"}

	switch g.rng.Intn(3) {
	case 0:
		return g.pick(descriptors) + " " + g.pick(elements) + "s"
	case 1:
		return g.pick(elements) + " " + g.pick([]string{"God", "Mafia", "Cartel"})
	default:
		return "808s & " + g.pick([]string{"Heartbreak", "Hi-Hats", "Snares"})
	}
}

// Ambient strategies.

func (g *Generator) ambientPoetic() string {
	atmospheres := []string{"Distant", "Fading", "Drifting", "Floating", "Suspended", "Dissolving"}
	subjects := []string{"Memories", "Horizons", "Echoes", "Reflections", "Dreams", "Stars"}

	switch g.rng.Intn(3) {
	case 0:
		return g.pick(atmospheres) + " " + g.pick(subjects)
	case 1:
		return "The " + g.pick(subjects) + " of " + g.pick([]string{"Time", "Space", "Light", "Silence"})
	default:
		return "Between " + g.pick(subjects)
	}
}

func (g *Generator) ambientAtmospheric() string {
	environments := []string{"Ocean", "Sky", "Forest", "Mountain", "Desert", "Tundra"}
	times := []string{"Dawn", "Dusk", "Midnight", "Twilight", "Morning", "Evening"}

	switch g.rng.Intn(3) {
	case 0:
		return g.pick(environments) + " at " + g.pick(times)
	case 1:
		return "Alone in the " + g.pick(environments)
	default:
		return g.pick(times) + " " + g.pick([]string{"Meditation", "Contemplation", "Reverie"})
	}
}

func (g *Generator) ambientMeditative() string {
	states := []string{"Peace", "Calm", "Serenity", "Stillness", "Tranquility", "Silence"}
	concepts := []string{"Within", "Beyond", "Eternal", "Infinite", "Deep", "Pure"}

	switch g.rng.Intn(3) {
	case 0:
		return g.pick(concepts) + " " + g.pick(states)
	case 1:
		return "Journey to " + g.pick(states)
	default:
		return "The Sound of " + g.pick(states)
	}
}

// Drum and bass strategies.

func (g *Generator) dnbLiquid() string {
	liquid := []string{"Liquid", "Smooth", "Silky", "Velvet", "Crystal", "Pure"}
	feelings := []string{"Soul", "Emotions", "Dreams", "Thoughts", "Memories", "Love"}

	switch g.rng.Intn(3) {
	case 0:
		return g.pick(liquid) + " " + g.pick(feelings)
	case 1:
		return g.pick(feelings) + " in Motion"
	default:
		return "Floating " + g.pick(feelings)
	}
}

func (g *Generator) dnbNeurofunk() string {
	neuro := []string{"Neuro", "Tech", "Dark", "Deep", "Heavy", "Complex"}
	descriptors := []string{"Synthesis", "Algorithm", "Protocol", "Function", "Process", "System"}

	switch g.rng.Intn(3) {
	case 0:
		return g.pick(neuro) + " " + g.pick(descriptors)
	case 1:
		return fmt.Sprintf("%s %03d", g.pick(descriptors), g.number(1, 999))
	default:
		return "Deep " + g.pick(neuro)
	}
}

func (g *Generator) dnbJungle() string {
	breaks := []string{"Amen", "Reese", "Hoover", "Mentasm", "Breakbeat"}
	actions := []string{"Pressure", "Power", "Energy", "Force", "Impact"}

	switch g.rng.Intn(3) {
	case 0:
		return g.pick(breaks) + " " + g.pick(actions)
	case 1:
		return g.pick(actions) + " Drop"
	default:
		return "Rolling " + g.pick(breaks)
	}
}
