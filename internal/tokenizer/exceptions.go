package tokenizer

// exceptions maps irregular and high-frequency forms straight to their
// lemma, bypassing the suffix rules. It covers the most common irregular
// verbs (ser, estar, ir, haber, tener, hacer, decir, poder, querer, saber,
// ver, dar) and frequent words whose endings look inflected but are not.
var exceptions = map[string]string{
	// ser
	"soy": "ser", "eres": "ser", "es": "ser", "somos": "ser", "sois": "ser",
	"son": "ser", "era": "ser", "eran": "ser", "fue": "ser", "fui": "ser",
	"fueron": "ser", "sido": "ser", "siendo": "ser", "será": "ser",

	// estar
	"estoy": "estar", "estás": "estar", "está": "estar", "estamos": "estar",
	"están": "estar", "estaba": "estar", "estaban": "estar", "estuvo": "estar",
	"estado": "estar",

	// ir
	"voy": "ir", "vas": "ir", "va": "ir", "vamos": "ir", "van": "ir",
	"iba": "ir", "iban": "ir", "fueran": "ir", "yendo": "ir",

	// haber
	"he": "haber", "has": "haber", "ha": "haber", "hemos": "haber",
	"han": "haber", "hay": "haber", "había": "haber", "habían": "haber",
	"hubo": "haber", "habrá": "haber",

	// tener
	"tengo": "tener", "tienes": "tener", "tiene": "tener", "tenemos": "tener",
	"tienen": "tener", "tenía": "tener", "tenían": "tener", "tuvo": "tener",
	"tenido": "tener",

	// hacer
	"hago": "hacer", "haces": "hacer", "hace": "hacer", "hacen": "hacer",
	"hacía": "hacer", "hizo": "hacer", "hicieron": "hacer", "hecho": "hacer",

	// decir
	"digo": "decir", "dices": "decir", "dice": "decir", "dicen": "decir",
	"decía": "decir", "dijo": "decir", "dijeron": "decir", "dicho": "decir",

	// poder
	"puedo": "poder", "puedes": "poder", "puede": "poder", "pueden": "poder",
	"podía": "poder", "pudo": "poder", "pudieron": "poder", "podido": "poder",

	// querer
	"quiero": "querer", "quieres": "querer", "quiere": "querer",
	"quieren": "querer", "quería": "querer", "quiso": "querer",

	// saber
	"sé": "saber", "sabes": "saber", "sabe": "saber", "saben": "saber",
	"sabía": "saber", "supo": "saber", "sabido": "saber",

	// ver
	"veo": "ver", "ves": "ver", "ve": "ver", "ven": "ver", "veía": "ver",
	"vio": "ver", "vieron": "ver", "visto": "ver",

	// dar
	"doy": "dar", "das": "dar", "da": "dar", "dan": "dar", "daba": "dar",
	"dio": "dar", "dieron": "dar", "dado": "dar",

	// articles, pronouns and function words the suffix rules would touch
	"los": "el", "las": "la", "les": "le", "unos": "uno", "unas": "una",
	"nos": "nos", "mis": "mi", "tus": "tu", "sus": "su", "todos": "todo",
	"todas": "toda", "esos": "ese", "esas": "esa", "estos": "este",
	"estas": "esta", "ellos": "él", "ellas": "ella", "quienes": "quien",
	"más": "más", "mientras": "mientras", "entonces": "entonces",
	"siempre": "siempre", "antes": "antes", "después": "después",
	"además": "además", "entre": "entre", "sobre": "sobre", "desde": "desde",
	"donde": "donde", "como": "como", "muy": "muy", "pues": "pues",

	// frequent nouns with verb-looking endings
	"noche": "noche", "noches": "noche", "gente": "gente", "parte": "parte",
	"partes": "parte", "nombre": "nombre", "hombre": "hombre",
	"hombres": "hombre", "madre": "madre", "padre": "padre", "calle": "calle",
	"muerte": "muerte", "suerte": "suerte", "tarde": "tarde", "clase": "clase",
	"coche": "coche", "leche": "leche", "carne": "carne", "frente": "frente",
	"fuente": "fuente", "puente": "puente", "torre": "torre", "nube": "nube",
	"sangre": "sangre", "aire": "aire", "veces": "vez", "vida": "vida",
	"comida": "comida", "salida": "salida", "mirada": "mirada",
	"llegada": "llegada", "nada": "nada", "cada": "cada",
}
