package testutil

// Sample JSON responses for API testing

// SampleLineID is the line the fixtures describe
const SampleLineID = 11311

// SampleLineResponse is a minimal valid line response
const SampleLineResponse = `{
	"id": 11311,
	"nameShort": "中央線快速",
	"nameRoman": "Chuo Rapid Line",
	"color": "#F15A22",
	"lineType": 2,
	"company": {"id": 2}
}`

// SampleStationsResponse lists the first five stations of the line
const SampleStationsResponse = `[
	{
		"id": 1131101, "groupId": 1130101, "name": "東京", "nameKatakana": "トウキョウ",
		"nameRoman": "Tokyo", "nameChinese": "东京", "nameKorean": "도쿄",
		"latitude": 35.681391, "longitude": 139.766103, "stopCondition": 0,
		"line": {"id": 11311},
		"lines": [
			{"id": 11311, "nameShort": "中央線快速", "nameRoman": "Chuo Rapid Line", "color": "#F15A22", "company": {"id": 2}},
			{"id": 11302, "nameShort": "山手線", "nameRoman": "Yamanote Line", "color": "#9ACD32", "company": {"id": 2}}
		],
		"stationNumbers": [{"lineSymbol": "JC", "stationNumber": "01", "lineSymbolShape": "SQUARE", "lineSymbolColor": "#F15A22"}]
	},
	{
		"id": 1131102, "groupId": 1130102, "name": "神田", "nameKatakana": "カンダ",
		"nameRoman": "Kanda", "latitude": 35.69169, "longitude": 139.770883, "stopCondition": 0,
		"line": {"id": 11311},
		"lines": [{"id": 11311, "nameShort": "中央線快速", "nameRoman": "Chuo Rapid Line", "color": "#F15A22"}],
		"stationNumbers": [{"lineSymbol": "JC", "stationNumber": "02"}]
	},
	{
		"id": 1131103, "groupId": 1131103, "name": "御茶ノ水", "nameKatakana": "オチャノミズ",
		"nameRoman": "Ochanomizu", "nameChinese": "御茶之水", "nameKorean": "오차노미즈",
		"latitude": 35.699605, "longitude": 139.765161, "stopCondition": 0,
		"line": {"id": 11311},
		"lines": [
			{"id": 11311, "nameShort": "中央線快速", "nameRoman": "Chuo Rapid Line", "color": "#F15A22"},
			{"id": 28001, "nameShort": "丸ノ内線", "nameRoman": "Marunouchi Line", "color": "#F62E36", "company": {"id": 18}}
		],
		"stationNumbers": [{"lineSymbol": "JC", "stationNumber": "03"}]
	},
	{
		"id": 1131104, "groupId": 1131104, "name": "四ツ谷", "nameKatakana": "ヨツヤ",
		"nameRoman": "Yotsuya", "nameChinese": "四谷", "nameKorean": "요쓰야",
		"latitude": 35.686041, "longitude": 139.730644, "stopCondition": 0,
		"line": {"id": 11311},
		"stationNumbers": [{"lineSymbol": "JC", "stationNumber": "04"}]
	},
	{
		"id": 1131105, "groupId": 1130208, "name": "新宿", "nameKatakana": "シンジュク",
		"nameRoman": "Shinjuku", "nameChinese": "新宿", "nameKorean": "신주쿠",
		"latitude": 35.689729, "longitude": 139.700464, "stopCondition": 0,
		"line": {"id": 11311},
		"lines": [{"id": 11302, "nameShort": "山手線", "nameRoman": "Yamanote Line", "color": "#9ACD32"}],
		"stationNumbers": [{"lineSymbol": "JC", "stationNumber": "05"}]
	}
]`

// SampleTrainTypesResponse lists the train types serving the first station
const SampleTrainTypesResponse = `[
	{"id": 500, "typeId": 1, "name": "快速", "nameRoman": "Rapid", "color": "#F15A22", "kind": 2,
	 "lines": [{"id": 11311, "nameShort": "中央線快速", "company": {"id": 2}}]},
	{"id": 501, "typeId": 2, "name": "通勤特快", "nameRoman": "Commuter Special Rapid", "color": "#0067C0", "kind": 2,
	 "lines": [{"id": 11311, "nameShort": "中央線快速", "company": {"id": 2}}]}
]`

// SampleTrainTypeStationsResponse lists the stations of train type 501,
// which passes Kanda and Ochanomizu
const SampleTrainTypeStationsResponse = `[
	{"id": 1131101, "groupId": 1130101, "name": "東京", "nameRoman": "Tokyo", "latitude": 35.681391, "longitude": 139.766103, "stopCondition": 0},
	{"id": 1131102, "groupId": 1130102, "name": "神田", "nameRoman": "Kanda", "latitude": 35.69169, "longitude": 139.770883, "stopCondition": 4},
	{"id": 1131103, "groupId": 1131103, "name": "御茶ノ水", "nameRoman": "Ochanomizu", "latitude": 35.699605, "longitude": 139.765161, "stopCondition": 4},
	{"id": 1131104, "groupId": 1131104, "name": "四ツ谷", "nameRoman": "Yotsuya", "latitude": 35.686041, "longitude": 139.730644, "stopCondition": 0},
	{"id": 1131105, "groupId": 1130208, "name": "新宿", "nameRoman": "Shinjuku", "latitude": 35.689729, "longitude": 139.700464, "stopCondition": 0}
]`

// SampleDataset is an offline dataset file for the same line
const SampleDataset = `{
	"line": {"id": 11311, "name": "中央線快速", "nameRoman": "Chuo Rapid Line", "color": "#F15A22", "category": "normal"},
	"stations": [
		{"id": 1131101, "groupId": 1130101, "name": "東京", "nameKatakana": "トウキョウ", "nameRoman": "Tokyo", "nameChinese": "东京", "nameKorean": "도쿄", "lat": 35.681391, "lon": 139.766103, "stopCondition": "ALL",
		 "lines": [{"id": 11302, "name": "山手線", "nameRoman": "Yamanote Line", "color": "#9ACD32"}]},
		{"id": 1131102, "groupId": 1130102, "name": "神田", "nameKatakana": "カンダ", "nameRoman": "Kanda", "lat": 35.69169, "lon": 139.770883, "stopCondition": "ALL"},
		{"id": 1131103, "groupId": 1131103, "name": "御茶ノ水", "nameKatakana": "オチャノミズ", "nameRoman": "Ochanomizu", "lat": 35.699605, "lon": 139.765161, "stopCondition": "ALL",
		 "lines": [{"id": 28001, "name": "丸ノ内線", "nameRoman": "Marunouchi Line", "color": "#F62E36"}]},
		{"id": 1131104, "groupId": 1131104, "name": "四ツ谷", "nameKatakana": "ヨツヤ", "nameRoman": "Yotsuya", "lat": 35.686041, "lon": 139.730644, "stopCondition": "ALL"},
		{"id": 1131105, "groupId": 1130208, "name": "新宿", "nameKatakana": "シンジュク", "nameRoman": "Shinjuku", "lat": 35.689729, "lon": 139.700464, "stopCondition": "ALL"}
	],
	"trainTypes": [
		{"id": 500, "typeId": 1, "name": "快速", "nameRoman": "Rapid", "kind": "rapid"},
		{"id": 501, "typeId": 2, "name": "通勤特快", "nameRoman": "Commuter Special Rapid", "kind": "rapid",
		 "stops": {"1131102": "PASS", "1131103": "PASS"}}
	]
}`

// SampleTrackCSV is a short recorded ride from Tokyo towards Kanda
const SampleTrackCSV = `latitude,longitude,accuracy,speed,timestamp
35.681391,139.766103,8,0,1712000000000
35.683500,139.767100,8,12,1712000010000
35.686500,139.768500,8,15,1712000020000
35.689800,139.770000,8,10,1712000030000
35.691600,139.770850,8,0,1712000040000
`

// SampleEmptyResponse is an empty JSON array response
const SampleEmptyResponse = `[]`

// SampleErrorResponse is a sample error response
const SampleErrorResponse = `{
	"error": "not_found",
	"message": "line not found"
}`
