package catalog

// The built-in table mirrors the production scenario set: one hundred
// scenarios, ten per behavioral group. Tags are stored bare; the validator
// normalizes them to their bracketed form.
var debtCollectionScenarios = []ScenarioDefinition{

	// Basic Payment Scenarios (1-10)
	{
		ID:               "basic_payment_willing",
		Name:             "Customer willing to pay immediately",
		Description:      "Customer acknowledges debt and agrees to pay within timeframe",
		CustomerBehavior: "cooperative",
		Outcome:          "positive",
		SpecialTags:      []string{"function_1"},
	},
	{
		ID:               "basic_payment_delayed",
		Name:             "Customer needs a few days to pay",
		Description:      "Customer acknowledges debt but needs time within the 10-day window",
		CustomerBehavior: "cooperative_delayed",
		Outcome:          "positive",
		SpecialTags:      []string{"function_1"},
	},
	{
		ID:               "basic_payment_refused",
		Name:             "Customer refuses to pay",
		Description:      "Customer acknowledges debt but refuses to pay",
		CustomerBehavior: "uncooperative",
		Outcome:          "negative",
		SpecialTags:      []string{"disconnect"},
	},
	{
		ID:               "basic_payment_partial",
		Name:             "Customer offers partial payment",
		Description:      "Customer wants to pay only part of the debt",
		CustomerBehavior: "negotiating",
		Outcome:          "negative",
		SpecialTags:      []string{"function_2"},
	},
	{
		ID:               "basic_payment_confusion",
		Name:             "Customer confused about amount",
		Description:      "Customer acknowledges debt but disputes the amount",
		CustomerBehavior: "confused",
		Outcome:          "neutral",
		SpecialTags:      []string{"function_1"},
	},
	{
		ID:               "basic_payment_already_paid",
		Name:             "Customer claims already paid",
		Description:      "Customer insists they already paid the debt",
		CustomerBehavior: "disputing",
		Outcome:          "dispute",
		SpecialTags:      []string{"function_2"},
	},
	{
		ID:               "basic_payment_financial_hardship",
		Name:             "Customer experiencing financial hardship",
		Description:      "Customer acknowledges debt but claims financial difficulties",
		CustomerBehavior: "hardship",
		Outcome:          "negative",
		SpecialTags:      []string{"function_1"},
	},
	{
		ID:               "basic_payment_medical_emergency",
		Name:             "Customer has medical emergency",
		Description:      "Customer cannot pay due to medical expenses",
		CustomerBehavior: "hardship",
		Outcome:          "negative",
		SpecialTags:      []string{"function_1"},
	},
	{
		ID:               "basic_payment_job_loss",
		Name:             "Customer lost their job",
		Description:      "Customer recently unemployed and cannot pay",
		CustomerBehavior: "hardship",
		Outcome:          "negative",
		SpecialTags:      []string{"function_1"},
	},
	{
		ID:               "basic_payment_family_emergency",
		Name:             "Customer has family emergency",
		Description:      "Customer dealing with family crisis affecting finances",
		CustomerBehavior: "hardship",
		Outcome:          "negative",
		SpecialTags:      []string{"function_1"},
	},

	// Wrong Person Contacted (11-20)
	{
		ID:               "wrong_person_family",
		Name:             "Family member answers phone",
		Description:      "Spouse, parent, or child answers instead of debtor",
		CustomerBehavior: "wrong_person",
		Outcome:          "transfer",
		SpecialTags:      []string{"transfer"},
	},
	{
		ID:               "wrong_person_roommate",
		Name:             "Roommate answers phone",
		Description:      "Roommate or housemate answers the call",
		CustomerBehavior: "wrong_person",
		Outcome:          "transfer",
		SpecialTags:      []string{"transfer"},
	},
	{
		ID:               "wrong_person_coworker",
		Name:             "Coworker answers phone",
		Description:      "Work colleague answers the phone",
		CustomerBehavior: "wrong_person",
		Outcome:          "transfer",
		SpecialTags:      []string{"transfer"},
	},
	{
		ID:               "wrong_person_stranger",
		Name:             "Complete stranger answers",
		Description:      "Wrong number, person doesn't know the debtor",
		CustomerBehavior: "wrong_person",
		Outcome:          "disconnect",
		SpecialTags:      []string{"disconnect"},
	},
	{
		ID:               "wrong_person_business",
		Name:             "Business receptionist answers",
		Description:      "Called a business number instead of personal",
		CustomerBehavior: "wrong_person",
		Outcome:          "transfer",
		SpecialTags:      []string{"transfer"},
	},
	{
		ID:               "wrong_person_ex_spouse",
		Name:             "Ex-spouse answers phone",
		Description:      "Former spouse answers, may or may not help",
		CustomerBehavior: "wrong_person",
		Outcome:          "transfer",
		SpecialTags:      []string{"transfer"},
	},
	{
		ID:               "wrong_person_landlord",
		Name:             "Landlord answers phone",
		Description:      "Property owner answers, debtor moved out",
		CustomerBehavior: "wrong_person",
		Outcome:          "disconnect",
		SpecialTags:      []string{"disconnect"},
	},
	{
		ID:               "wrong_person_new_owner",
		Name:             "New phone number owner",
		Description:      "Number was reassigned to someone else",
		CustomerBehavior: "wrong_person",
		Outcome:          "disconnect",
		SpecialTags:      []string{"disconnect"},
	},
	{
		ID:               "wrong_person_friend",
		Name:             "Friend answers phone",
		Description:      "Friend of debtor answers the call",
		CustomerBehavior: "wrong_person",
		Outcome:          "transfer",
		SpecialTags:      []string{"transfer"},
	},
	{
		ID:               "wrong_person_neighbor",
		Name:             "Neighbor answers phone",
		Description:      "Neighbor answers, debtor moved away",
		CustomerBehavior: "wrong_person",
		Outcome:          "disconnect",
		SpecialTags:      []string{"disconnect"},
	},

	// Technical Issues (21-30)
	{
		ID:               "tech_poor_connection",
		Name:             "Poor phone connection",
		Description:      "Call has bad audio quality, static, or drops",
		CustomerBehavior: "technical",
		Outcome:          "disconnect",
		SpecialTags:      []string{"disconnect"},
	},
	{
		ID:               "tech_call_drops",
		Name:             "Call gets disconnected",
		Description:      "Call drops in the middle of conversation",
		CustomerBehavior: "technical",
		Outcome:          "disconnect",
		SpecialTags:      []string{"disconnect"},
	},
	{
		ID:               "tech_voicemail",
		Name:             "Reaches voicemail",
		Description:      "Call goes to voicemail system",
		CustomerBehavior: "technical",
		Outcome:          "disconnect",
		SpecialTags:      []string{"disconnect"},
	},
	{
		ID:               "tech_busy_signal",
		Name:             "Line is busy",
		Description:      "Phone line is busy when calling",
		CustomerBehavior: "technical",
		Outcome:          "disconnect",
		SpecialTags:      []string{"disconnect"},
	},
	{
		ID:               "tech_no_answer",
		Name:             "No one answers",
		Description:      "Phone rings but no one picks up",
		CustomerBehavior: "technical",
		Outcome:          "disconnect",
		SpecialTags:      []string{"disconnect"},
	},
	{
		ID:               "tech_number_disconnected",
		Name:             "Number is disconnected",
		Description:      "Phone number is no longer in service",
		CustomerBehavior: "technical",
		Outcome:          "disconnect",
		SpecialTags:      []string{"disconnect"},
	},
	{
		ID:               "tech_hearing_impaired",
		Name:             "Customer is hearing impaired",
		Description:      "Customer has difficulty hearing the agent",
		CustomerBehavior: "technical",
		Outcome:          "transfer",
		SpecialTags:      []string{"transfer"},
	},
	{
		ID:               "tech_language_barrier",
		Name:             "Language barrier",
		Description:      "Customer doesn't speak the agent's language well",
		CustomerBehavior: "technical",
		Outcome:          "transfer",
		SpecialTags:      []string{"transfer"},
	},
	{
		ID:               "tech_echo_feedback",
		Name:             "Echo or feedback on line",
		Description:      "Technical audio issues making conversation difficult",
		CustomerBehavior: "technical",
		Outcome:          "disconnect",
		SpecialTags:      []string{"disconnect"},
	},
	{
		ID:               "tech_automated_system",
		Name:             "Reaches automated system",
		Description:      "Call connects to automated phone system",
		CustomerBehavior: "technical",
		Outcome:          "disconnect",
		SpecialTags:      []string{"disconnect"},
	},

	// Hostile/Aggressive Customers (31-40)
	{
		ID:               "hostile_angry_yelling",
		Name:             "Customer is angry and yelling",
		Description:      "Customer becomes very aggressive and hostile",
		CustomerBehavior: "hostile",
		Outcome:          "negative",
		SpecialTags:      []string{"disconnect"},
	},
	{
		ID:               "hostile_threatening",
		Name:             "Customer makes threats",
		Description:      "Customer threatens the agent or company",
		CustomerBehavior: "hostile",
		Outcome:          "negative",
		SpecialTags:      []string{"disconnect"},
	},
	{
		ID:               "hostile_profanity",
		Name:             "Customer uses profanity",
		Description:      "Customer swears and uses inappropriate language",
		CustomerBehavior: "hostile",
		Outcome:          "negative",
		SpecialTags:      []string{"disconnect"},
	},
	{
		ID:               "hostile_harassment_claims",
		Name:             "Customer claims harassment",
		Description:      "Customer accuses agent of harassment",
		CustomerBehavior: "hostile",
		Outcome:          "negative",
		SpecialTags:      []string{"function_2"},
	},
	{
		ID:               "hostile_legal_threats",
		Name:             "Customer threatens legal action",
		Description:      "Customer threatens to sue the company",
		CustomerBehavior: "hostile",
		Outcome:          "negative",
		SpecialTags:      []string{"function_2"},
	},
	{
		ID:               "hostile_recording_threat",
		Name:             "Customer threatens to record",
		Description:      "Customer says they're recording the call",
		CustomerBehavior: "hostile",
		Outcome:          "neutral",
		SpecialTags:      []string{"function_2"},
	},
	{
		ID:               "hostile_complaint_threat",
		Name:             "Customer threatens to file complaint",
		Description:      "Customer threatens regulatory complaint",
		CustomerBehavior: "hostile",
		Outcome:          "negative",
		SpecialTags:      []string{"function_2"},
	},
	{
		ID:               "hostile_media_threat",
		Name:             "Customer threatens media exposure",
		Description:      "Customer threatens to go to media/social media",
		CustomerBehavior: "hostile",
		Outcome:          "negative",
		SpecialTags:      []string{"function_2"},
	},
	{
		ID:               "hostile_personal_attacks",
		Name:             "Customer makes personal attacks",
		Description:      "Customer attacks agent personally",
		CustomerBehavior: "hostile",
		Outcome:          "negative",
		SpecialTags:      []string{"disconnect"},
	},
	{
		ID:               "hostile_hangs_up_angry",
		Name:             "Customer hangs up angrily",
		Description:      "Customer ends call abruptly in anger",
		CustomerBehavior: "hostile",
		Outcome:          "negative",
		SpecialTags:      []string{"disconnect"},
	},

	// Legal/Regulatory Issues (41-50)
	{
		ID:               "legal_bankruptcy",
		Name:             "Customer filed for bankruptcy",
		Description:      "Customer is in bankruptcy proceedings",
		CustomerBehavior: "legal",
		Outcome:          "legal",
		SpecialTags:      []string{"function_2"},
	},
	{
		ID:               "legal_attorney_representation",
		Name:             "Customer has attorney",
		Description:      "Customer is represented by legal counsel",
		CustomerBehavior: "legal",
		Outcome:          "legal",
		SpecialTags:      []string{"transfer"},
	},
	{
		ID:               "legal_cease_desist",
		Name:             "Customer demands cease and desist",
		Description:      "Customer formally requests no more contact",
		CustomerBehavior: "legal",
		Outcome:          "legal",
		SpecialTags:      []string{"function_2"},
	},
	{
		ID:               "legal_dispute_debt",
		Name:             "Customer formally disputes debt",
		Description:      "Customer legally disputes the debt validity",
		CustomerBehavior: "legal",
		Outcome:          "legal",
		SpecialTags:      []string{"function_2"},
	},
	{
		ID:               "legal_identity_theft",
		Name:             "Customer claims identity theft",
		Description:      "Customer says debt is from identity theft",
		CustomerBehavior: "legal",
		Outcome:          "legal",
		SpecialTags:      []string{"function_2"},
	},
	{
		ID:               "legal_deceased_debtor",
		Name:             "Debtor is deceased",
		Description:      "Family member reports debtor has died",
		CustomerBehavior: "legal",
		Outcome:          "legal",
		SpecialTags:      []string{"function_2"},
	},
	{
		ID:               "legal_military_deployment",
		Name:             "Customer is deployed military",
		Description:      "Customer is on military deployment",
		CustomerBehavior: "legal",
		Outcome:          "legal",
		SpecialTags:      []string{"function_2"},
	},
	{
		ID:               "legal_statute_limitations",
		Name:             "Customer claims statute of limitations",
		Description:      "Customer says debt is too old to collect",
		CustomerBehavior: "legal",
		Outcome:          "legal",
		SpecialTags:      []string{"function_2"},
	},
	{
		ID:               "legal_fraud_claim",
		Name:             "Customer claims fraud",
		Description:      "Customer says the debt is fraudulent",
		CustomerBehavior: "legal",
		Outcome:          "legal",
		SpecialTags:      []string{"function_2"},
	},
	{
		ID:               "legal_court_order",
		Name:             "Customer has court order",
		Description:      "Customer has court order regarding debt",
		CustomerBehavior: "legal",
		Outcome:          "legal",
		SpecialTags:      []string{"function_2"},
	},

	// Special Circumstances (51-60)
	{
		ID:               "special_elderly_confusion",
		Name:             "Elderly customer is confused",
		Description:      "Elderly person doesn't understand the situation",
		CustomerBehavior: "vulnerable",
		Outcome:          "transfer",
		SpecialTags:      []string{"transfer"},
	},
	{
		ID:               "special_mental_health",
		Name:             "Customer has mental health issues",
		Description:      "Customer appears to have mental health challenges",
		CustomerBehavior: "vulnerable",
		Outcome:          "transfer",
		SpecialTags:      []string{"transfer"},
	},
	{
		ID:               "special_disability",
		Name:             "Customer has disability",
		Description:      "Customer has physical or cognitive disability",
		CustomerBehavior: "vulnerable",
		Outcome:          "transfer",
		SpecialTags:      []string{"transfer"},
	},
	{
		ID:               "special_non_english",
		Name:             "Customer doesn't speak English",
		Description:      "Customer needs interpreter services",
		CustomerBehavior: "language",
		Outcome:          "transfer",
		SpecialTags:      []string{"transfer"},
	},
	{
		ID:               "special_minor_child",
		Name:             "Minor child answers phone",
		Description:      "Child under 18 answers the call",
		CustomerBehavior: "minor",
		Outcome:          "disconnect",
		SpecialTags:      []string{"disconnect"},
	},
	{
		ID:               "special_hospitalized",
		Name:             "Customer is hospitalized",
		Description:      "Customer is currently in hospital",
		CustomerBehavior: "medical",
		Outcome:          "neutral",
		SpecialTags:      []string{"function_1"},
	},
	{
		ID:               "special_incarcerated",
		Name:             "Customer is in jail/prison",
		Description:      "Customer is currently incarcerated",
		CustomerBehavior: "incarcerated",
		Outcome:          "neutral",
		SpecialTags:      []string{"function_2"},
	},
	{
		ID:               "special_natural_disaster",
		Name:             "Customer affected by natural disaster",
		Description:      "Customer's area hit by hurricane, flood, etc.",
		CustomerBehavior: "disaster",
		Outcome:          "neutral",
		SpecialTags:      []string{"function_1"},
	},
	{
		ID:               "special_covid_impact",
		Name:             "Customer affected by pandemic",
		Description:      "Customer lost job/income due to COVID-19",
		CustomerBehavior: "pandemic",
		Outcome:          "negative",
		SpecialTags:      []string{"function_1"},
	},
	{
		ID:               "special_military_active",
		Name:             "Active military service member",
		Description:      "Customer is active duty military",
		CustomerBehavior: "military",
		Outcome:          "legal",
		SpecialTags:      []string{"function_2"},
	},

	// Business/Employment Related (61-70)
	{
		ID:               "business_workplace_call",
		Name:             "Called customer at workplace",
		Description:      "Agent reaches customer at their job",
		CustomerBehavior: "workplace",
		Outcome:          "neutral",
		SpecialTags:      []string{"function_1"},
	},
	{
		ID:               "business_employer_contact",
		Name:             "Employer answers phone",
		Description:      "Customer's boss or HR answers",
		CustomerBehavior: "employer",
		Outcome:          "transfer",
		SpecialTags:      []string{"transfer"},
	},
	{
		ID:               "business_self_employed",
		Name:             "Customer is self-employed",
		Description:      "Customer runs their own business",
		CustomerBehavior: "business_owner",
		Outcome:          "neutral",
		SpecialTags:      []string{"function_1"},
	},
	{
		ID:               "business_seasonal_worker",
		Name:             "Customer is seasonal worker",
		Description:      "Customer only works certain times of year",
		CustomerBehavior: "seasonal",
		Outcome:          "negative",
		SpecialTags:      []string{"function_1"},
	},
	{
		ID:               "business_commission_based",
		Name:             "Customer works on commission",
		Description:      "Customer's income varies by performance",
		CustomerBehavior: "variable_income",
		Outcome:          "negative",
		SpecialTags:      []string{"function_1"},
	},
	{
		ID:               "business_recently_fired",
		Name:             "Customer was recently fired",
		Description:      "Customer lost job recently",
		CustomerBehavior: "unemployed",
		Outcome:          "negative",
		SpecialTags:      []string{"function_1"},
	},
	{
		ID:               "business_retirement",
		Name:             "Customer is retired",
		Description:      "Customer is on fixed retirement income",
		CustomerBehavior: "retired",
		Outcome:          "negative",
		SpecialTags:      []string{"function_1"},
	},
	{
		ID:               "business_student",
		Name:             "Customer is a student",
		Description:      "Customer is in school with limited income",
		CustomerBehavior: "student",
		Outcome:          "negative",
		SpecialTags:      []string{"function_1"},
	},
	{
		ID:               "business_gig_worker",
		Name:             "Customer is gig worker",
		Description:      "Customer drives for Uber, delivers food, etc.",
		CustomerBehavior: "gig_economy",
		Outcome:          "negative",
		SpecialTags:      []string{"function_1"},
	},
	{
		ID:               "business_new_job",
		Name:             "Customer just started new job",
		Description:      "Customer recently got employment",
		CustomerBehavior: "new_employment",
		Outcome:          "positive",
		SpecialTags:      []string{"function_1"},
	},

	// Payment Method Issues (71-80)
	{
		ID:               "payment_no_bank_account",
		Name:             "Customer has no bank account",
		Description:      "Customer is unbanked",
		CustomerBehavior: "unbanked",
		Outcome:          "neutral",
		SpecialTags:      []string{"function_1"},
	},
	{
		ID:               "payment_frozen_account",
		Name:             "Customer's account is frozen",
		Description:      "Bank account is frozen or closed",
		CustomerBehavior: "account_issues",
		Outcome:          "negative",
		SpecialTags:      []string{"function_1"},
	},
	{
		ID:               "payment_card_declined",
		Name:             "Customer's card was declined",
		Description:      "Payment method doesn't work",
		CustomerBehavior: "payment_failure",
		Outcome:          "negative",
		SpecialTags:      []string{"function_1"},
	},
	{
		ID:               "payment_cash_only",
		Name:             "Customer only has cash",
		Description:      "Customer wants to pay with cash",
		CustomerBehavior: "cash_preference",
		Outcome:          "neutral",
		SpecialTags:      []string{"function_1"},
	},
	{
		ID:               "payment_app_issues",
		Name:             "Customer can't use payment app",
		Description:      "Technical issues with CashNow app",
		CustomerBehavior: "tech_issues",
		Outcome:          "neutral",
		SpecialTags:      []string{"function_1"},
	},
	{
		ID:               "payment_insufficient_funds",
		Name:             "Customer has insufficient funds",
		Description:      "Not enough money in account",
		CustomerBehavior: "insufficient_funds",
		Outcome:          "negative",
		SpecialTags:      []string{"function_1"},
	},
	{
		ID:               "payment_waiting_paycheck",
		Name:             "Customer waiting for paycheck",
		Description:      "Customer gets paid soon",
		CustomerBehavior: "pending_income",
		Outcome:          "positive",
		SpecialTags:      []string{"function_1"},
	},
	{
		ID:               "payment_money_order",
		Name:             "Customer wants to pay by money order",
		Description:      "Customer prefers money order payment",
		CustomerBehavior: "alternative_payment",
		Outcome:          "neutral",
		SpecialTags:      []string{"function_1"},
	},
	{
		ID:               "payment_wire_transfer",
		Name:             "Customer offers wire transfer",
		Description:      "Customer wants to wire the money",
		CustomerBehavior: "alternative_payment",
		Outcome:          "neutral",
		SpecialTags:      []string{"function_1"},
	},
	{
		ID:               "payment_cryptocurrency",
		Name:             "Customer offers cryptocurrency",
		Description:      "Customer wants to pay with Bitcoin, etc.",
		CustomerBehavior: "alternative_payment",
		Outcome:          "negative",
		SpecialTags:      []string{"function_1"},
	},

	// Family/Personal Situations (81-90)
	{
		ID:               "family_divorce",
		Name:             "Customer going through divorce",
		Description:      "Customer in divorce proceedings",
		CustomerBehavior: "personal_crisis",
		Outcome:          "negative",
		SpecialTags:      []string{"function_1"},
	},
	{
		ID:               "family_death",
		Name:             "Customer had death in family",
		Description:      "Customer dealing with family death",
		CustomerBehavior: "grieving",
		Outcome:          "negative",
		SpecialTags:      []string{"function_1"},
	},
	{
		ID:               "family_new_baby",
		Name:             "Customer has new baby",
		Description:      "Customer has new child, medical expenses",
		CustomerBehavior: "new_parent",
		Outcome:          "negative",
		SpecialTags:      []string{"function_1"},
	},
	{
		ID:               "family_caring_elderly",
		Name:             "Customer caring for elderly parent",
		Description:      "Customer has elderly care expenses",
		CustomerBehavior: "caregiver",
		Outcome:          "negative",
		SpecialTags:      []string{"function_1"},
	},
	{
		ID:               "family_child_support",
		Name:             "Customer paying child support",
		Description:      "Customer has child support obligations",
		CustomerBehavior: "child_support",
		Outcome:          "negative",
		SpecialTags:      []string{"function_1"},
	},
	{
		ID:               "family_domestic_violence",
		Name:             "Customer is domestic violence victim",
		Description:      "Customer in abusive relationship",
		CustomerBehavior: "vulnerable",
		Outcome:          "transfer",
		SpecialTags:      []string{"transfer"},
	},
	{
		ID:               "family_addiction_issues",
		Name:             "Customer has addiction problems",
		Description:      "Customer struggling with substance abuse",
		CustomerBehavior: "addiction",
		Outcome:          "transfer",
		SpecialTags:      []string{"transfer"},
	},
	{
		ID:               "family_housing_crisis",
		Name:             "Customer facing eviction",
		Description:      "Customer about to lose housing",
		CustomerBehavior: "housing_crisis",
		Outcome:          "negative",
		SpecialTags:      []string{"function_1"},
	},
	{
		ID:               "family_immigration_issues",
		Name:             "Customer has immigration problems",
		Description:      "Customer dealing with immigration status",
		CustomerBehavior: "immigration",
		Outcome:          "negative",
		SpecialTags:      []string{"function_1"},
	},
	{
		ID:               "family_multiple_debts",
		Name:             "Customer has multiple debts",
		Description:      "Customer overwhelmed with many debts",
		CustomerBehavior: "debt_overwhelmed",
		Outcome:          "negative",
		SpecialTags:      []string{"function_1"},
	},

	// Miscellaneous Edge Cases (91-100)
	{
		ID:               "misc_wrong_debt_amount",
		Name:             "Agent has wrong debt amount",
		Description:      "System shows incorrect debt amount",
		CustomerBehavior: "system_error",
		Outcome:          "neutral",
		SpecialTags:      []string{"function_2"},
	},
	{
		ID:               "misc_duplicate_call",
		Name:             "Customer already spoke to agent today",
		Description:      "Customer received multiple calls same day",
		CustomerBehavior: "duplicate_contact",
		Outcome:          "neutral",
		SpecialTags:      []string{"function_2"},
	},
	{
		ID:               "misc_wrong_customer_name",
		Name:             "Agent has wrong customer name",
		Description:      "System has incorrect customer information",
		CustomerBehavior: "system_error",
		Outcome:          "neutral",
		SpecialTags:      []string{"function_2"},
	},
	{
		ID:               "misc_customer_moved",
		Name:             "Customer moved to different country",
		Description:      "Customer relocated internationally",
		CustomerBehavior: "relocated",
		Outcome:          "negative",
		SpecialTags:      []string{"function_2"},
	},
	{
		ID:               "misc_customer_very_polite",
		Name:             "Extremely polite customer",
		Description:      "Customer is overly courteous and apologetic",
		CustomerBehavior: "overly_polite",
		Outcome:          "positive",
		SpecialTags:      []string{"function_1"},
	},
	{
		ID:               "misc_customer_suspicious",
		Name:             "Customer acts suspiciously",
		Description:      "Customer behavior seems unusual or evasive",
		CustomerBehavior: "suspicious",
		Outcome:          "negative",
		SpecialTags:      []string{"function_2"},
	},
	{
		ID:               "misc_customer_drunk",
		Name:             "Customer appears intoxicated",
		Description:      "Customer seems under the influence",
		CustomerBehavior: "intoxicated",
		Outcome:          "disconnect",
		SpecialTags:      []string{"disconnect"},
	},
	{
		ID:               "misc_background_noise",
		Name:             "Loud background noise",
		Description:      "Customer in noisy environment",
		CustomerBehavior: "environmental",
		Outcome:          "neutral",
		SpecialTags:      []string{"function_1"},
	},
	{
		ID:               "misc_customer_multitasking",
		Name:             "Customer is multitasking",
		Description:      "Customer distracted, doing other things",
		CustomerBehavior: "distracted",
		Outcome:          "neutral",
		SpecialTags:      []string{"function_1"},
	},
	{
		ID:               "misc_perfect_resolution",
		Name:             "Perfect customer interaction",
		Description:      "Customer is ideal - polite, pays immediately",
		CustomerBehavior: "ideal",
		Outcome:          "positive",
		SpecialTags:      []string{"function_1"},
	},
}
