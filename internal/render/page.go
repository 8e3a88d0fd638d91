package render

import (
	"bytes"
	"html/template"
)

const PageTemplateName = "page"

// PageView is everything the widget page needs.
type PageView struct {
	Input        string
	Cities       []string
	DropdownOpen bool
	Current      template.HTML
	Cards        template.HTML
	Alert        string
}

var dropdownTmpl = template.Must(template.New("dropdown").Parse(
	`<div id="drop_list" class="dropdown{{if not .Open}} hidden{{end}}">
    <ul id="dropList_cities">{{range .Cities}}
        <li class="history-item" data-city="{{.}}">{{.}}</li>{{end}}
    </ul>
</div>`))

// Dropdown renders the search history list; it stays hidden unless open.
func Dropdown(cities []string, open bool) template.HTML {
	var buf bytes.Buffer
	_ = dropdownTmpl.Execute(&buf, struct {
		Cities []string
		Open   bool
	}{Cities: cities, Open: open && len(cities) > 0})
	return template.HTML(buf.String())
}

// PageTemplate is loaded into gin with SetHTMLTemplate.
func PageTemplate() *template.Template {
	return template.Must(template.New(PageTemplateName).Funcs(template.FuncMap{
		"dropdown": Dropdown,
	}).Parse(pageSource))
}

const pageSource = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>Weather</title>
    <style>
        .hidden { display: none; }
        .dropdown { position: absolute; background: #fff; border: 1px solid #ccc; }
        .history-item { cursor: pointer; padding: 2px 8px; }
        .history-item:hover { background: #eee; }
        #weather-cards { display: flex; gap: 1rem; list-style: none; padding: 0; }
        .card, .details { background: #bfdbfe; border-radius: 8px; padding: 8px 16px; }
        .description { text-transform: capitalize; }
    </style>
</head>
<body>
<main>
    <form id="search-form" method="post" action="/search" autocomplete="off">
        <div style="position: relative">
            <input id="city-search" name="city" type="text" placeholder="E.g., New York, London, Tokyo" value="{{.Input}}">
            {{dropdown .Cities .DropdownOpen}}
        </div>
        <button id="search-btn" type="submit">Search</button>
        <button id="location-btn" type="button">Use Current Location</button>
    </form>
    <noscript>
        <form id="history-form" method="post">
            <button formaction="/history/focus">Show history</button>
            <button formaction="/history/blur">Hide history</button>
        </form>
    </noscript>
    <form id="location-form" method="post" action="/locate" class="hidden">
        <input type="hidden" name="lat">
        <input type="hidden" name="lon">
        <input type="hidden" name="error">
    </form>
    <section id="current-weather">{{.Current}}</section>
    <h2>5-Day Forecast</h2>
    <ul id="weather-cards">{{.Cards}}</ul>
</main>
<script>
(function () {
    var input = document.getElementById("city-search");
    var dropList = document.getElementById("drop_list");
    var items = document.querySelectorAll("#dropList_cities li");
    input.addEventListener("focus", function () {
        if (items.length > 0) { dropList.classList.remove("hidden"); }
    });
    document.addEventListener("click", function (e) {
        if (!dropList.contains(e.target) && e.target !== input) { dropList.classList.add("hidden"); }
    });
    items.forEach(function (li) {
        li.addEventListener("click", function () {
            input.value = li.dataset.city;
            dropList.classList.add("hidden");
        });
    });
    var locForm = document.getElementById("location-form");
    document.getElementById("location-btn").addEventListener("click", function () {
        navigator.geolocation.getCurrentPosition(function (pos) {
            locForm.lat.value = pos.coords.latitude;
            locForm.lon.value = pos.coords.longitude;
            locForm.submit();
        }, function (err) {
            locForm.error.value = err.code === err.PERMISSION_DENIED ? "denied" : (err.code === err.TIMEOUT ? "timeout" : "unavailable");
            locForm.submit();
        });
    });
})();
{{with .Alert}}alert({{.}});{{end}}
</script>
</body>
</html>
`
