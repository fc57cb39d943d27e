package ingest

import "github.com/hartlaw-ai/lexrag/internal/vectorstore"

// SampleCaseLaw returns a small built-in corpus of landmark and illustrative
// opinions so the system works without API credentials.
func SampleCaseLaw() []vectorstore.Document {
	return []vectorstore.Document{
		{
			ID:   "sample_1",
			Text: "The Ninth Circuit held that employment contracts must be interpreted according to their plain meaning. When an employee handbook explicitly states that employment is at-will, courts should not infer additional job security protections absent clear and unambiguous language to the contrary. The court emphasized that employers have the right to modify policies, but must provide adequate notice to employees.",
			Metadata: vectorstore.Metadata{
				CaseName:     "Smith v. Jones",
				Citation:     "123 F.3d 456 (9th Cir. 2020)",
				Court:        "ca9",
				Jurisdiction: vectorstore.JurisdictionFederal,
				DateFiled:    "2020-03-15",
				DocumentType: "case_law",
				URL:          "https://example.com/sample1",
			},
		},
		{
			ID:   "sample_2",
			Text: "The district court ruled that trade secret misappropriation requires proof that the defendant acquired information through improper means. Mere similarity between products is insufficient. The plaintiff must demonstrate that the defendant knew or should have known the information was obtained through breach of confidentiality. The court applied the Defend Trade Secrets Act and found that independent development is a complete defense.",
			Metadata: vectorstore.Metadata{
				CaseName:     "TechCorp v. Innovation Labs",
				Citation:     "567 F. Supp. 3d 890 (N.D. Cal. 2021)",
				Court:        "californiad",
				Jurisdiction: vectorstore.JurisdictionFederal,
				DateFiled:    "2021-06-22",
				DocumentType: "case_law",
				URL:          "https://example.com/sample2",
			},
		},
		{
			ID:   "sample_3",
			Text: "The Supreme Court established that criminal suspects must be informed of their constitutional rights before custodial interrogation. The Fifth Amendment privilege against self-incrimination requires law enforcement to advise individuals of their right to remain silent and right to counsel. Any statements obtained without proper Miranda warnings are inadmissible in court. This landmark decision fundamentally changed criminal procedure across the United States.",
			Metadata: vectorstore.Metadata{
				CaseName:     "Miranda v. Arizona",
				Citation:     "384 U.S. 436 (1966)",
				Court:        "scotus",
				Jurisdiction: vectorstore.JurisdictionFederal,
				DateFiled:    "1966-06-13",
				DocumentType: "case_law",
				URL:          "https://example.com/sample3",
			},
		},
		{
			ID:   "sample_4",
			Text: "The California Supreme Court held that state education regulations must comply with equal protection guarantees. School districts cannot implement policies that disproportionately burden students based on protected characteristics without demonstrating a compelling state interest. The court applied strict scrutiny review and found that less restrictive alternatives existed. This decision reinforced California's commitment to educational equity and non-discrimination.",
			Metadata: vectorstore.Metadata{
				CaseName:     "Johnson v. State Board of Education",
				Citation:     "234 P.3d 567 (Cal. 2019)",
				Court:        "cal",
				Jurisdiction: vectorstore.JurisdictionState,
				DateFiled:    "2019-09-10",
				DocumentType: "case_law",
				URL:          "https://example.com/sample4",
			},
		},
		{
			ID:   "sample_5",
			Text: "The Second Circuit addressed Fourth Amendment protections for digital communications. The court held that warrantless searches of electronic devices violate the Fourth Amendment absent exigent circumstances. Cloud-stored data receives the same constitutional protection as physical documents. Law enforcement must obtain a warrant supported by probable cause before accessing personal digital information. The decision balanced privacy rights with law enforcement needs in the digital age.",
			Metadata: vectorstore.Metadata{
				CaseName:     "United States v. Digital Privacy Foundation",
				Citation:     "789 F.3d 123 (2nd Cir. 2022)",
				Court:        "ca2",
				Jurisdiction: vectorstore.JurisdictionFederal,
				DateFiled:    "2022-11-08",
				DocumentType: "case_law",
				URL:          "https://example.com/sample5",
			},
		},
		{
			ID:   "sample_6",
			Text: "The New York Appellate Division ruled on collective bargaining disputes in the construction industry. The court held that employers must bargain in good faith with certified union representatives. Unilateral changes to working conditions during active negotiations constitute unfair labor practices. The decision emphasized that labor law seeks to balance employer interests with worker protections and promote industrial peace through structured negotiations.",
			Metadata: vectorstore.Metadata{
				CaseName:     "Green Construction v. Workers Union Local 45",
				Citation:     "456 N.Y.S.2d 789 (N.Y. App. Div. 2020)",
				Court:        "nyappdiv",
				Jurisdiction: vectorstore.JurisdictionState,
				DateFiled:    "2020-04-17",
				DocumentType: "case_law",
				URL:          "https://example.com/sample6",
			},
		},
		{
			ID:   "sample_7",
			Text: "The D.C. Circuit reviewed environmental regulations under the Clean Air Act. The court held that federal agencies must base regulations on scientific evidence and cannot ignore significant environmental harms. When data demonstrates public health risks, the EPA has a statutory duty to act. The decision reinforced the importance of evidence-based policymaking and judicial deference to agency expertise within statutory boundaries.",
			Metadata: vectorstore.Metadata{
				CaseName:     "Environmental Defense Fund v. State EPA",
				Citation:     "890 F.3d 234 (D.C. Cir. 2023)",
				Court:        "cadc",
				Jurisdiction: vectorstore.JurisdictionFederal,
				DateFiled:    "2023-02-28",
				DocumentType: "case_law",
				URL:          "https://example.com/sample7",
			},
		},
		{
			ID:   "sample_8",
			Text: "The California Court of Appeal addressed tenant rights under state housing law. The court held that landlords must maintain habitable premises and cannot retaliate against tenants who report code violations. Constructive eviction occurs when conditions become so poor that reasonable tenants are forced to leave. The decision protected vulnerable renters and clarified remedies available under California's tenant protection statutes.",
			Metadata: vectorstore.Metadata{
				CaseName:     "Martinez v. Landlord Property Management",
				Citation:     "345 Cal. Rptr. 3d 678 (Cal. Ct. App. 2021)",
				Court:        "calctapp",
				Jurisdiction: vectorstore.JurisdictionState,
				DateFiled:    "2021-07-14",
				DocumentType: "case_law",
				URL:          "https://example.com/sample8",
			},
		},
	}
}

// SampleRegulations returns a small built-in corpus of federal regulations.
func SampleRegulations() []vectorstore.Document {
	return []vectorstore.Document{
		{
			ID:   "reg_sample_1",
			Text: "The Americans with Disabilities Act defines disability as a physical or mental impairment that substantially limits one or more major life activities. Employers must provide reasonable accommodations unless doing so would impose undue hardship on business operations. Major life activities include caring for oneself, performing manual tasks, seeing, hearing, eating, sleeping, walking, standing, lifting, bending, speaking, breathing, learning, reading, concentrating, thinking, communicating, and working.",
			Metadata: vectorstore.Metadata{
				CaseName:     "29 CFR § 1630.2 - Definitions (ADA Employment Regulations)",
				Citation:     "29 CFR § 1630.2",
				Court:        "ecfr",
				Jurisdiction: vectorstore.JurisdictionFederal,
				DateFiled:    "2023-01-01",
				DocumentType: "regulation",
				URL:          "https://www.ecfr.gov/current/title-29/subtitle-B/chapter-XIV/part-1630",
			},
		},
		{
			ID:   "reg_sample_2",
			Text: "It is unlawful for any person to employ any device, scheme, or artifice to defraud in connection with the purchase or sale of any security. This includes making untrue statements of material fact or omitting material facts necessary to make statements not misleading. The rule also prohibits engaging in any act, practice, or course of business which operates as fraud or deceit upon any person. This is the primary antifraud provision under federal securities law.",
			Metadata: vectorstore.Metadata{
				CaseName:     "17 CFR § 240.10b-5 - Employment of manipulative and deceptive devices",
				Citation:     "17 CFR § 240.10b-5",
				Court:        "ecfr",
				Jurisdiction: vectorstore.JurisdictionFederal,
				DateFiled:    "2022-06-15",
				DocumentType: "regulation",
				URL:          "https://www.ecfr.gov/current/title-17/chapter-II/part-240/section-240.10b-5",
			},
		},
		{
			ID:   "reg_sample_3",
			Text: "Operators of websites or online services directed to children under 13 must obtain verifiable parental consent before collecting personal information. The rule requires clear privacy policies, reasonable security measures, and limits on data collection to what is necessary. Parents have the right to review and delete their child's information. Violations can result in civil penalties. This rule implements the Children's Online Privacy Protection Act.",
			Metadata: vectorstore.Metadata{
				CaseName:     "16 CFR Part 312 - Children's Online Privacy Protection Rule (COPPA)",
				Citation:     "16 CFR Part 312",
				Court:        "ecfr",
				Jurisdiction: vectorstore.JurisdictionFederal,
				DateFiled:    "2023-03-20",
				DocumentType: "regulation",
				URL:          "https://www.ecfr.gov/current/title-16/chapter-I/subchapter-C/part-312",
			},
		},
		{
			ID:   "reg_sample_4",
			Text: "New major sources and major modifications at existing sources must obtain permits demonstrating use of best available control technology (BACT). The rule protects air quality in areas meeting National Ambient Air Quality Standards. Applicants must conduct air quality analyses and demonstrate that emissions will not cause or contribute to violations. Public notice and comment periods are required. This implements the Clean Air Act's PSD program.",
			Metadata: vectorstore.Metadata{
				CaseName:     "40 CFR § 52.21 - Prevention of significant deterioration of air quality",
				Citation:     "40 CFR § 52.21",
				Court:        "ecfr",
				Jurisdiction: vectorstore.JurisdictionFederal,
				DateFiled:    "2022-11-08",
				DocumentType: "regulation",
				URL:          "https://www.ecfr.gov/current/title-40/chapter-I/subchapter-C/part-52/subpart-A/section-52.21",
			},
		},
	}
}
