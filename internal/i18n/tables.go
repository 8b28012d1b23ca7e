package i18n

var translations = map[Language]map[string]string{
	English: {
		"appName":          "GrainAir",
		"tagline":          "Smart Air Quality for Rural India",
		"reportIncident":   "Report Incident",
		"airQuality":       "Air Quality",
		"forecast":         "Forecast",
		"healthAdvice":     "Health Advice",
		"currentAQI":       "Current AQI",
		"pm25":             "PM2.5",
		"pm10":             "PM10",
		"no2":              "NO₂",
		"good":             "Good",
		"moderate":         "Moderate",
		"unhealthy":        "Unhealthy",
		"hazardous":        "Hazardous",
		"next72Hours":      "Next 72 Hours",
		"reportSmokeTitle": "Report Smoke/Burning",
		"location":         "Location",
		"description":      "Description",
		"submit":           "Submit Report",
		"cancel":           "Cancel",
		"selectLanguage":   "Language",

		"incidentType":         "Incident Type",
		"submitting":           "Submitting...",
		"locationCaptured":     "Location captured!",
		"locationCapturedBody": "Your current location has been added to the report.",
		"locationError":        "Location Error",
		"locationErrorBody":    "Unable to get your location. Please enter manually.",
		"reportIncomplete":     "Incomplete Report",
		"reportIncompleteBody": "Please fill in the location and description.",
		"reportSubmitted":      "Report Submitted Successfully!",
		"reportSubmittedBody":  "Thank you for helping monitor air quality in your area.",
		"reportFailed":         "Report Not Submitted",
		"reportFailedBody":     "Something went wrong. Please try again.",
	},
	Hindi: {
		"appName":          "ग्रेनएयर",
		"tagline":          "ग्रामीण भारत के लिए स्मार्ट वायु गुणवत्ता",
		"reportIncident":   "घटना रिपोर्ट करें",
		"airQuality":       "वायु गुणवत्ता",
		"forecast":         "पूर्वानुमान",
		"healthAdvice":     "स्वास्थ्य सलाह",
		"currentAQI":       "वर्तमान AQI",
		"pm25":             "PM2.5",
		"pm10":             "PM10",
		"no2":              "NO₂",
		"good":             "अच्छा",
		"moderate":         "मध्यम",
		"unhealthy":        "अस्वास्थ्यकर",
		"hazardous":        "खतरनाक",
		"next72Hours":      "अगले 72 घंटे",
		"reportSmokeTitle": "धुआं/जलने की रिपोर्ट करें",
		"location":         "स्थान",
		"description":      "विवरण",
		"submit":           "रिपोर्ट जमा करें",
		"cancel":           "रद्द करें",
		"selectLanguage":   "भाषा",

		"incidentType":         "घटना का प्रकार",
		"submitting":           "जमा हो रहा है...",
		"locationCaptured":     "स्थान प्राप्त हुआ!",
		"locationCapturedBody": "आपका वर्तमान स्थान रिपोर्ट में जोड़ दिया गया है।",
		"locationError":        "स्थान त्रुटि",
		"locationErrorBody":    "आपका स्थान प्राप्त नहीं हो सका। कृपया स्वयं दर्ज करें।",
		"reportIncomplete":     "अधूरी रिपोर्ट",
		"reportIncompleteBody": "कृपया स्थान और विवरण भरें।",
		"reportSubmitted":      "रिपोर्ट सफलतापूर्वक जमा हुई!",
		"reportSubmittedBody":  "अपने क्षेत्र की वायु गुणवत्ता की निगरानी में मदद के लिए धन्यवाद।",
		"reportFailed":         "रिपोर्ट जमा नहीं हुई",
		"reportFailedBody":     "कुछ गलत हो गया। कृपया पुनः प्रयास करें।",
	},
}
