package config

import "github.com/acadjobs/job-comb/app/listing"

// Default returns the compiled-in keyword tables. The tables are rebuilt on
// every call so callers can never mutate shared state.
func Default() *Config {
	return &Config{
		JobTypes: []KeywordSet{
			{Name: listing.JobTypeTenureTrack, Keywords: []string{
				"tenure-track", "tenure track", "assistant professor",
				"associate professor", "full professor", "tenured",
			}},
			{Name: listing.JobTypeVisiting, Keywords: []string{
				"visiting professor", "visiting assistant", "visiting scholar",
				"visiting position", "visiting faculty", "visiting",
			}},
			{Name: listing.JobTypePostdoc, Keywords: []string{
				"postdoc", "post-doc", "postdoctoral", "post-doctoral",
				"research fellow", "research associate",
			}},
			{Name: listing.JobTypeLecturer, Keywords: []string{
				"lecturer", "instructor", "teaching professor",
				"teaching fellow", "adjunct",
			}},
		},
		Specializations: []KeywordSet{
			{Name: "microeconomics", Keywords: []string{"microeconomics", "micro theory", "microeconomic theory", "game theory", "mechanism design"}},
			{Name: "macroeconomics", Keywords: []string{"macroeconomics", "macro", "monetary economics", "business cycles", "economic growth"}},
			{Name: "econometrics", Keywords: []string{"econometrics", "econometric theory", "applied econometrics", "causal inference"}},
			{Name: "labor_economics", Keywords: []string{"labor economics", "labour economics", "labor markets"}},
			{Name: "public_economics", Keywords: []string{"public economics", "public finance", "taxation", "fiscal policy"}},
			{Name: "international_economics", Keywords: []string{"international economics", "international trade", "international finance", "trade policy"}},
			{Name: "development_economics", Keywords: []string{"development economics", "economic development"}},
			{Name: "financial_economics", Keywords: []string{"financial economics", "finance", "asset pricing", "corporate finance"}},
			{Name: "behavioral_economics", Keywords: []string{"behavioral economics", "behavioural economics", "experimental economics"}},
			{Name: "industrial_organization", Keywords: []string{"industrial organization", "industrial organisation", "antitrust", "competition policy"}},
			{Name: "environmental_economics", Keywords: []string{"environmental economics", "energy economics", "climate economics", "resource economics"}},
			{Name: "health_economics", Keywords: []string{"health economics", "health policy"}},
			{Name: "urban_economics", Keywords: []string{"urban economics", "regional economics", "spatial economics"}},
			{Name: "economic_history", Keywords: []string{"economic history", "cliometrics"}},
			{Name: "political_economy", Keywords: []string{"political economy", "public choice"}},
		},
		Departments: []KeywordSet{
			{Name: listing.DepartmentEconomics, Keywords: []string{"economics", "economic", "econ"}},
			{Name: listing.DepartmentManagement, Keywords: []string{"management", "business school", "business administration", "organizational behavior"}},
			{Name: listing.DepartmentMarketing, Keywords: []string{"marketing"}},
		},
		Provinces: []string{
			"北京", "上海", "天津", "重庆", "河北", "山西", "辽宁", "吉林",
			"黑龙江", "江苏", "浙江", "安徽", "福建", "江西", "山东", "河南",
			"湖北", "湖南", "广东", "海南", "四川", "贵州", "云南", "陕西",
			"甘肃", "青海", "广西", "内蒙古", "西藏", "宁夏", "新疆",
		},
		CountryRegions: []CountryRegion{
			{Country: "united states", Region: listing.RegionUnitedStates},
			{Country: "united states of america", Region: listing.RegionUnitedStates},
			{Country: "usa", Region: listing.RegionUnitedStates},
			{Country: "u.s.a.", Region: listing.RegionUnitedStates},
			{Country: "u.s.", Region: listing.RegionUnitedStates},
			{Country: "us", Region: listing.RegionUnitedStates},
			{Country: "america", Region: listing.RegionUnitedStates},
			{Country: "china", Region: listing.RegionMainlandChina},
			{Country: "mainland china", Region: listing.RegionMainlandChina},
			{Country: "people's republic of china", Region: listing.RegionMainlandChina},
			{Country: "prc", Region: listing.RegionMainlandChina},
			{Country: "中国", Region: listing.RegionMainlandChina},
			{Country: "united kingdom", Region: listing.RegionUnitedKingdom},
			{Country: "uk", Region: listing.RegionUnitedKingdom},
			{Country: "u.k.", Region: listing.RegionUnitedKingdom},
			{Country: "great britain", Region: listing.RegionUnitedKingdom},
			{Country: "england", Region: listing.RegionUnitedKingdom},
			{Country: "scotland", Region: listing.RegionUnitedKingdom},
			{Country: "wales", Region: listing.RegionUnitedKingdom},
			{Country: "northern ireland", Region: listing.RegionUnitedKingdom},
			{Country: "canada", Region: listing.RegionCanada},
			{Country: "australia", Region: listing.RegionAustralia},
		},
	}
}
