package catalog

import "github.com/roofsolar/planner/pkg/core"

// Builtin is the list of well-known addresses seeded into an empty catalog.
var Builtin = []core.Location{
	{Address: "서울특별시 강남구 테헤란로 152", Lat: 37.5057, Lng: 127.0521},
	{Address: "서울특별시 중구 세종대로 110", Lat: 37.5636, Lng: 126.9759},
	{Address: "서울특별시 종로구 청와대로 1", Lat: 37.5866, Lng: 126.9748},
	{Address: "서울시 성동구 왕십리로322", Lat: 37.5607, Lng: 127.0374},
	{Address: "부산광역시 해운대구 우동", Lat: 35.1595, Lng: 129.1600},
	{Address: "대구광역시 중구 동성로", Lat: 35.8714, Lng: 128.6014},
	{Address: "인천광역시 중구 공항로 272", Lat: 37.4691, Lng: 126.4503},
	{Address: "광주광역시 동구 금남로", Lat: 35.1468, Lng: 126.9204},
	{Address: "대전광역시 유성구 대학로", Lat: 36.3651, Lng: 127.3736},
	{Address: "울산광역시 남구 삼산로", Lat: 35.5372, Lng: 129.3114},
	{Address: "수원시 영통구 월드컵로 206", Lat: 37.2570, Lng: 127.0313},
	{Address: "성남시 분당구 정자로 24", Lat: 37.3626, Lng: 127.1063},
	{Address: "고양시 일산동구 중앙로 1200", Lat: 37.6550, Lng: 126.7706},
	{Address: "용인시 수지구 풍덕천로 152", Lat: 37.3217, Lng: 127.1017},
	{Address: "안양시 동안구 시민대로 230", Lat: 37.3943, Lng: 126.9568},
	{Address: "안산시 단원구 광덕대로 205", Lat: 37.3236, Lng: 126.8219},
	{Address: "의정부시 의정부동 222-1", Lat: 37.7381, Lng: 127.0338},
	{Address: "평택시 비전동 909", Lat: 36.9910, Lng: 127.1127},
	{Address: "시흥시 정왕동 1488", Lat: 37.3740, Lng: 126.8031},
	{Address: "파주시 금촌동 1077", Lat: 37.7595, Lng: 126.7801},
	{Address: "김포시 사우동 201", Lat: 37.6156, Lng: 126.7162},
	{Address: "광명시 하안동 61", Lat: 37.4768, Lng: 126.8664},
	{Address: "구리시 인창동 543", Lat: 37.5943, Lng: 127.1295},
	{Address: "남양주시 호평동 592", Lat: 37.6369, Lng: 127.2467},
	{Address: "오산시 원동 159", Lat: 37.1498, Lng: 127.0772},
	{Address: "이천시 부발읍 경충대로 2709", Lat: 37.2028, Lng: 127.4354},
	{Address: "안성시 공도읍 서동대로 4600", Lat: 37.0057, Lng: 127.2734},
	{Address: "의왕시 고천동 240", Lat: 37.3449, Lng: 126.9684},
	{Address: "하남시 신장동 520", Lat: 37.5394, Lng: 127.2065},
	{Address: "여주시 세종로 1", Lat: 37.2984, Lng: 127.6371},
	{Address: "양평군 양평읍 공원로 19", Lat: 37.4911, Lng: 127.4874},
	{Address: "가평군 가평읍 가평대로 268", Lat: 37.8313, Lng: 127.5110},
	{Address: "연천군 연천읍 연천로 220", Lat: 38.0962, Lng: 127.0745},
	{Address: "포천시 소흘읍 호국로 1663", Lat: 37.8950, Lng: 127.2006},
	{Address: "동두천시 생연동 169", Lat: 37.9034, Lng: 127.0609},
	{Address: "과천시 중앙동 1-1", Lat: 37.4289, Lng: 126.9876},
}
