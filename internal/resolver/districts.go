package resolver

// District is a candidate regional subdivision. Slugs are tried in order
// against the URL template until one probes valid; most districts have a
// single slug, a few are known under historical aliases.
type District struct {
	Name  string
	Slugs []string
}

// URLTemplate builds the listing URL probed for a district slug.
func URLTemplate(slug string) string {
	return "https://" + slug + ".fff.fr/les-clubs/"
}

// Districts returns the known federation districts with their URL slug
// candidates, in stable order.
func Districts() []District {
	d := func(name string, slugs ...string) District {
		return District{Name: name, Slugs: slugs}
	}
	return []District{
		d("Ain", "ain"),
		d("Aisne", "aisne"),
		d("Allier", "allier"),
		d("Alpes_de_Haute_Provence", "alpes-haute-provence"),
		d("Hautes_Alpes", "hautes-alpes"),
		d("Alpes_Maritimes", "alpes-maritimes"),
		d("Ardeche", "ardeche"),
		d("Ardennes", "ardennes"),
		d("Ariege", "ariege"),
		d("Aube", "aube"),
		d("Aude", "aude"),
		d("Aveyron", "aveyron"),
		d("Bouches_du_Rhone", "bouches-du-rhone"),
		d("Calvados", "calvados"),
		d("Cantal", "cantal"),
		d("Charente", "charente"),
		d("Charente_Maritime", "charente-maritime"),
		d("Cher", "cher"),
		d("Correze", "correze"),
		d("Corse", "corse"),
		d("Cote_d_Or", "cote-d-or"),
		d("Cotes_d_Armor", "cotes-d-armor"),
		d("Creuse", "creuse"),
		d("Dordogne", "dordogne"),
		d("Doubs", "doubs"),
		d("Drome", "drome"),
		d("Eure", "eure"),
		d("Eure_et_Loir", "eure-et-loir"),
		d("Finistere", "finistere"),
		d("Gard", "gard"),
		d("Haute_Garonne", "haute-garonne"),
		d("Gers", "gers"),
		d("Gironde", "gironde"),
		d("Herault", "herault"),
		d("Ille_et_Vilaine", "ille-et-vilaine"),
		d("Indre", "indre"),
		d("Indre_et_Loire", "indre-et-loire"),
		d("Isere", "isere"),
		d("Jura", "jura"),
		d("Landes", "landes"),
		d("Loir_et_Cher", "loir-et-cher"),
		d("Loire", "loire"),
		d("Haute_Loire", "haute-loire"),
		d("Loire_Atlantique", "loire-atlantique", "district44"),
		d("Loiret", "loiret"),
		d("Lot", "lot"),
		d("Lot_et_Garonne", "lot-et-garonne"),
		d("Lozere", "lozere"),
		d("Maine_et_Loire", "maine-et-loire"),
		d("Manche", "manche"),
		d("Marne", "marne"),
		d("Haute_Marne", "haute-marne"),
		d("Mayenne", "mayenne"),
		d("Meurthe_et_Moselle", "meurthe-et-moselle"),
		d("Meuse", "meuse"),
		d("Morbihan", "morbihan"),
		d("Moselle", "moselle"),
		d("Nievre", "nievre"),
		d("Nord", "nord", "district59"),
		d("Oise", "oise"),
		d("Orne", "orne"),
		d("Pas_de_Calais", "pas-de-calais", "district62"),
		d("Puy_de_Dome", "puy-de-dome"),
		d("Pyrenees_Atlantiques", "pyrenees-atlantiques"),
		d("Hautes_Pyrenees", "hautes-pyrenees"),
		d("Pyrenees_Orientales", "pyrenees-orientales"),
		d("Bas_Rhin", "bas-rhin"),
		d("Haut_Rhin", "haut-rhin"),
		d("Rhone", "rhone"),
		d("Haute_Saone", "haute-saone"),
		d("Saone_et_Loire", "saone-et-loire"),
		d("Sarthe", "sarthe"),
		d("Savoie", "savoie"),
		d("Haute_Savoie", "haute-savoie"),
		d("Paris_IDF", "paris-idf", "parisidf", "idf"),
		d("Seine_Maritime", "seine-maritime"),
		d("Seine_et_Marne", "seine-et-marne"),
		d("Yvelines", "yvelines"),
		d("Deux_Sevres", "deux-sevres"),
		d("Somme", "somme"),
		d("Tarn", "tarn"),
		d("Tarn_et_Garonne", "tarn-et-garonne"),
		d("Var", "var"),
		d("Vaucluse", "vaucluse"),
		d("Vendee", "vendee"),
		d("Vienne", "vienne"),
		d("Haute_Vienne", "haute-vienne"),
		d("Vosges", "vosges"),
		d("Yonne", "yonne"),
		d("Territoire_de_Belfort", "territoire-de-belfort"),
		d("Essonne", "essonne"),
		d("Hauts_de_Seine", "hauts-de-seine"),
		d("Seine_Saint_Denis", "seine-saint-denis"),
		d("Val_de_Marne", "val-de-marne"),
		d("Val_d_Oise", "val-d-oise"),
		d("Guadeloupe", "guadeloupe"),
		d("Martinique", "martinique"),
		d("Guyane", "guyane"),
		d("Reunion", "reunion"),
		d("Mayotte", "mayotte"),
	}
}
