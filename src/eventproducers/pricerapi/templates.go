package pricerapi

const indexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Black-Scholes Option Pricing Model</title>
<style>
body { font-family: sans-serif; margin: 0; display: flex; }
aside { width: 280px; padding: 16px; background: #f0f2f6; min-height: 100vh; }
aside label { display: block; margin-top: 8px; font-size: 14px; }
aside input, aside select { width: 100%; }
main { flex: 1; padding: 16px 32px; }
table { border-collapse: collapse; margin-bottom: 16px; }
td, th { border: 1px solid #ccc; padding: 4px 10px; text-align: right; }
.cards { display: flex; gap: 16px; margin-bottom: 16px; }
.card { flex: 1; padding: 12px; border-radius: 10px; text-align: center; }
.card .label { font-size: 1rem; margin-bottom: 4px; }
.card .value { font-size: 1.5rem; font-weight: bold; }
.call { background: #90ee90; }
.put { background: #ffcccb; }
.errors { color: #b00020; }
iframe { width: 100%; height: 2500px; border: 0; }
</style>
</head>
<body>
<aside>
<h2>Black-Scholes Model</h2>
<form id="pricing-form" method="get" action="/">
<label>Current Asset Price <input type="number" step="0.01" name="spot" value="{{.Form.Spot}}"></label>
<label>Strike Price <input type="number" step="0.01" name="strike" value="{{.Form.Strike}}"></label>
<label>Time to Maturity (Years) <input type="number" step="0.01" name="maturity" value="{{.Form.Maturity}}"></label>
<label>Volatility (&sigma;) <input type="number" step="0.01" name="volatility" value="{{.Form.Volatility}}"></label>
<label>Risk-Free Interest Rate <input type="number" step="0.01" name="rate" value="{{.Form.Rate}}"></label>
<hr>
<h3>Heatmap Parameters</h3>
<label>Min Spot Price <input type="number" step="0.01" name="spot_min" value="{{.Form.SpotMin}}"></label>
<label>Max Spot Price <input type="number" step="0.01" name="spot_max" value="{{.Form.SpotMax}}"></label>
<label>Min Volatility <input type="number" step="0.01" name="vol_min" value="{{.Form.VolMin}}"></label>
<label>Max Volatility <input type="number" step="0.01" name="vol_max" value="{{.Form.VolMax}}"></label>
<label>Min Call Purchase Price <input type="number" step="0.01" name="call_purchase_min" value="{{.Form.CallPurchaseMin}}"></label>
<label>Max Call Purchase Price <input type="number" step="0.01" name="call_purchase_max" value="{{.Form.CallPurchaseMax}}"></label>
<label>Min Put Purchase Price <input type="number" step="0.01" name="put_purchase_min" value="{{.Form.PutPurchaseMin}}"></label>
<label>Max Put Purchase Price <input type="number" step="0.01" name="put_purchase_max" value="{{.Form.PutPurchaseMax}}"></label>
<label>Resolution <input type="number" min="2" max="50" name="resolution" value="{{.Form.Resolution}}"></label>
<label>CSV grid <select name="type">
{{range .OptionTypes}}<option value="{{.}}"{{if eq . $.Form.Type}} selected{{end}}>{{.Label}}</option>{{end}}
</select></label>
<p><button type="submit">Update</button> <a id="csv-link" href="{{.CSVURL}}">Download CSV</a></p>
</form>
</aside>
<main>
<h1>Black-Scholes Pricing Model</h1>
<div id="errors" class="errors">{{range .Errors}}<p>{{.}}</p>{{end}}</div>
{{with .Result}}
<table>
<tr><th>Current Asset Price</th><th>Strike Price</th><th>Time to Maturity (Years)</th><th>Volatility (&sigma;)</th><th>Risk-Free Interest Rate</th></tr>
<tr><td>{{num .Inputs.Spot 2}}</td><td>{{num .Inputs.Strike 2}}</td><td>{{num .Inputs.Maturity 4}}</td><td>{{num .Inputs.Volatility 4}}</td><td>{{num .Inputs.Rate 4}}</td></tr>
</table>
<div class="cards">
<div class="card call"><div class="label">CALL Value</div><div class="value" id="call-value">{{dollars .CallPrice}}</div></div>
<div class="card put"><div class="label">PUT Value</div><div class="value" id="put-value">{{dollars .PutPrice}}</div></div>
</div>
<table id="greeks">
<tr><th>Greek</th><th>Call</th><th>Put</th></tr>
<tr><td>Delta</td><td>{{num .Greeks.CallDelta 4}}</td><td>{{num .Greeks.PutDelta 4}}</td></tr>
<tr><td>Gamma</td><td>{{num .Greeks.Gamma 4}}</td><td>{{num .Greeks.Gamma 4}}</td></tr>
<tr><td>Vega</td><td>{{num .Greeks.Vega 4}}</td><td>{{num .Greeks.Vega 4}}</td></tr>
<tr><td>Theta</td><td>{{num .Greeks.CallTheta 4}}</td><td>{{num .Greeks.PutTheta 4}}</td></tr>
<tr><td>Rho</td><td>{{num .Greeks.CallRho 4}}</td><td>{{num .Greeks.PutRho 4}}</td></tr>
</table>
<h2>Options Price - Interactive Heatmap</h2>
<p>Explore how option prices fluctuate with varying spot prices and volatility levels, all while maintaining a constant strike price.</p>
<iframe id="heatmaps" src="{{$.HeatmapURL}}"></iframe>
{{end}}
</main>
<script>
(function () {
  var form = document.getElementById("pricing-form");
  var scheme = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(scheme + location.host + "/ws");
  var money = new Intl.NumberFormat("en-US", { style: "currency", currency: "USD" });
  var timer = null;

  function num(name) {
    var v = parseFloat(form.elements[name].value);
    return isNaN(v) ? 0 : v;
  }

  var sweepFields = ["spot_min", "spot_max", "vol_min", "vol_max", "call_purchase_min", "call_purchase_max", "put_purchase_min", "put_purchase_max", "resolution"];

  function update() {
    var query = new URLSearchParams(new FormData(form)).toString();
    document.getElementById("csv-link").href = "/api/v1/heatmap.csv?" + query;
    // blank sweep fields are left out so the server derives them from the inputs
    var heatmap = {};
    sweepFields.forEach(function (name) {
      var raw = form.elements[name].value.trim();
      if (raw !== "") {
        heatmap[name] = name === "resolution" ? Math.round(parseFloat(raw)) : parseFloat(raw);
      }
    });
    ws.send(JSON.stringify({
      inputs: { spot: num("spot"), strike: num("strike"), maturity: num("maturity"), volatility: num("volatility"), rate: num("rate") },
      heatmap: heatmap
    }));
  }

  ws.onmessage = function (ev) {
    var reply = JSON.parse(ev.data);
    var errors = document.getElementById("errors");
    if (reply.type !== "result") {
      errors.textContent = reply.message;
      return;
    }
    errors.textContent = "";
    var call = document.getElementById("call-value");
    if (!call) {
      return;
    }
    call.textContent = money.format(reply.result.call_price);
    document.getElementById("put-value").textContent = money.format(reply.result.put_price);
    var g = reply.result.greeks;
    var rows = document.getElementById("greeks").rows;
    var values = [[g.call_delta, g.put_delta], [g.gamma, g.gamma], [g.vega, g.vega], [g.call_theta, g.put_theta], [g.call_rho, g.put_rho]];
    for (var i = 0; i < values.length; i++) {
      rows[i + 1].cells[1].textContent = values[i][0].toFixed(4);
      rows[i + 1].cells[2].textContent = values[i][1].toFixed(4);
    }
    document.getElementById("heatmaps").src = "/heatmap?" + new URLSearchParams(new FormData(form)).toString();
  };

  form.addEventListener("input", function () {
    clearTimeout(timer);
    timer = setTimeout(update, 300);
  });
})();
</script>
</body>
</html>
`
