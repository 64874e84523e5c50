package email

const (
	subjectInventoryAlertFmt = "Uusi auto vastaa hakuvahtiasi: %s %s"
	subjectContactAck        = "Kiitos yhteydenotostasi"
	subjectNewsletterWelcome = "Tervetuloa uutiskirjeen tilaajaksi"
)
